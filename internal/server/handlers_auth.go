// ABOUTME: Login and token verification endpoints
// ABOUTME: Login returns a bearer token; verify echoes the token's subject and expiry
package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	TokenType string `json:"token_type"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tok, err := s.opts.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, r, &APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"})
			return
		}
		writeError(w, r, err)
		return
	}

	log.Info("admin logged in", "email", req.Email)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     tok.Value,
		ExpiresIn: int64(tok.ExpiresIn.Seconds()),
		TokenType: "Bearer",
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		authFailure(w, r, http.StatusUnauthorized, auth.ErrMissingToken)
		return
	}
	claims, err := s.opts.Auth.Verify(token)
	if err != nil {
		authFailure(w, r, http.StatusUnauthorized, auth.ErrInvalidToken)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":      true,
		"email":      claims.Subject,
		"expires_at": claims.ExpiresAt.Unix(),
	})
}
