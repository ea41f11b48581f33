package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are logged,
// not surfaced — the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// writeNotFound responds 404 with the given message.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}})
}

// writeValidation responds 422 for a request rejected by validation, either
// before the service layer (malformed input) or by a wrapped
// domain.ErrValidation from it.
func writeValidation(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity,
		ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
}

// writeInternal responds 500 with a generic body and logs the cause.
func writeInternal(w http.ResponseWriter, err error) {
	slog.Error("handler: internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError,
		ErrorResponse{Error: ErrorDetail{Code: "internal", Message: "internal server error"}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.LikeService.Toggle: validation error: cannot like yourself"
// → "cannot like yourself"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
