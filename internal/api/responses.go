package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "elelem/backend/internal/errors"
)

// Shared DTOs for API responses and helpers for sending consistent HTTP
// responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// respondWithError maps business-layer sentinel errors to HTTP status codes
// and writes a standard JSON error body. Anything unrecognized becomes a
// generic 500; the detailed error stays in the server log and is never sent
// to the client.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages from the service layer are already
		// user-friendly.
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		message = "Could not validate credentials."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected error occurred. Please try again later."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals a payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
