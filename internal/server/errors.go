// ABOUTME: JSON error envelope shared by every handler
// ABOUTME: {"error":{"type":...,"message":...}} with a fixed type per status code
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/models"
)

// APIError is an error with an HTTP status and a client-safe message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", errorPrefix(e.Status), e.Message)
}

// Type is the machine-readable error kind sent to clients.
func (e *APIError) Type() string {
	switch e.Status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation_error"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal_error"
	}
}

func errorPrefix(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusUnprocessableEntity:
		return "Validation error"
	case http.StatusTooManyRequests:
		return "Rate limited"
	case http.StatusServiceUnavailable:
		return "Service unavailable"
	default:
		return "Internal error"
	}
}

func badRequest(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func internalError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// writeError renders err as the envelope. Anything that is not an APIError or
// a ValidationError is logged and hidden behind a generic internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	var valErr *models.ValidationError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &valErr):
		apiErr = &APIError{Status: http.StatusUnprocessableEntity, Message: valErr.Error()}
	default:
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
		apiErr = internalError("An unexpected error occurred")
	}

	writeJSON(w, apiErr.Status, errorBody{Error: errorDetail{Type: apiErr.Type(), Message: apiErr.Error()}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to encode response", "err", err)
	}
}

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into v, rejecting malformed or oversized input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}
