package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"slay-store/internal/model"

	"github.com/rs/zerolog"
)

// MessageResponse is returned by operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already sent; nothing useful remains to report.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, model.ErrorResponse{Message: message, Error: code})
}

// statusFor maps an error kind onto an HTTP status code.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidationFailed, model.KindInvalidState:
		return http.StatusBadRequest
	case model.KindUnauthenticated:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err to the client. Domain errors carry their own
// message; anything else is logged and reported as an internal error.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) && de.Kind != model.KindInternal {
		logger.Debug().
			Str("kind", de.Kind.String()).
			Str("code", de.Code).
			Str("path", r.URL.Path).
			Msg(de.Message)
		writeError(w, statusFor(de.Kind), de.Message, de.Code)
		return
	}

	logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, "Internal server error", model.ErrCodeInternalError)
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", model.ErrCodeInvalidJSON)
		return false
	}
	return true
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, model.NewValidationError("invalid value for " + key + ": " + raw)
	}
	return &v, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError("invalid value for " + key + ": " + raw)
	}
	return v, nil
}
