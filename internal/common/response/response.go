package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Common error codes
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInternalError = "INTERNAL_ERROR"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// JSON writes v with the given status code
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
	}
}

// Error writes a client-safe error message
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// InternalError logs err and answers with a generic 500
func InternalError(w http.ResponseWriter, err error, context string) {
	log.Error().
		Err(err).
		Str("context", context).
		Msg("internal error occurred")
	Error(w, http.StatusInternalServerError, CodeInternalError, "An internal error occurred")
}

// Message writes a {"message": ...} body
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}
