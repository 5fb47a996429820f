// Package respond centralizes JSON responses and the mapping from the
// planner's error vocabulary to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/grupo-nexus/planner/internal/model"
)

// ErrorResponse is the error body every endpoint returns. Kind is set only
// for auth failures so clients can rebuild the typed error.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// WriteJSON writes data with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError writes an ErrorResponse with the given status and message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteDomainError maps the post/calendar error sentinels onto statuses:
// validation and malformed dates are 400, unknown ids 404, everything else
// 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrMalformedDate):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		WriteNotFound(w, err.Error())
	default:
		WriteInternalError(w, err.Error())
	}
}

// WriteAuthError maps AuthError kinds onto statuses while carrying the kind
// in the body: invalid-email 400, rate-limited 429, unknown 500, credential
// failures 401.
func WriteAuthError(w http.ResponseWriter, err error) {
	ae, ok := model.AsAuthError(err)
	if !ok {
		WriteInternalError(w, err.Error())
		return
	}
	status := http.StatusUnauthorized
	switch ae.Kind {
	case model.AuthInvalidEmail:
		status = http.StatusBadRequest
	case model.AuthRateLimited:
		status = http.StatusTooManyRequests
	case model.AuthUnknown:
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, ErrorResponse{
		Error: "authentication failed",
		Kind:  string(ae.Kind),
	})
}
