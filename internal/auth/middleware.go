// ABOUTME: HTTP middleware guarding admin-only routes with bearer JWTs
// ABOUTME: Verified claims are stored on the request context for handlers
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// FailureFunc writes the response for a rejected request.
type FailureFunc func(w http.ResponseWriter, r *http.Request, status int, err error)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// Authorize resolves the admin claims for r. The status is 401 or 403 on failure.
func (a *Authenticator) Authorize(r *http.Request) (*Claims, int, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, http.StatusUnauthorized, ErrMissingToken
	}
	claims, err := a.Verify(token)
	if err != nil {
		return nil, http.StatusUnauthorized, err
	}
	if !a.IsAdmin(claims) {
		log.Warn("authenticated user is not the admin", "sub", claims.Subject)
		return nil, http.StatusForbidden, ErrNotAdmin
	}
	return claims, http.StatusOK, nil
}

// RequireAdmin wraps next so only the admin reaches it.
func (a *Authenticator) RequireAdmin(fail FailureFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, status, err := a.Authorize(r)
			if err != nil {
				fail(w, r, status, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}
