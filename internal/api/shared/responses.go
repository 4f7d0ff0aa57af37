package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse defines the standard error response structure.
// FieldErrors is present only for validation failures: an ordered map from
// field name to the full list of violation messages for that field,
// serialized in the order validation recorded the fields.
type ErrorResponse struct {
	Error       string         `json:"error"`
	FieldErrors *FieldErrorMap `json:"fieldErrors,omitempty"`
	Code        int            `json:"-"` // Not serialized to JSON, used for logging
	TraceID     string         `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithFieldErrors(w, r, status, message, nil)
}

// RespondWithFieldErrors writes a JSON error response carrying a field-keyed
// validation error map alongside the summary message.
func RespondWithFieldErrors(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	fieldErrors *FieldErrorMap,
) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Error:       message,
		FieldErrors: fieldErrors,
		Code:        status,
		TraceID:     traceID,
	}

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}
