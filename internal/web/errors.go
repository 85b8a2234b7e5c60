package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with full technical detail server-side and returned
// to the client as a sanitized JSON body. Domain errors from the intake and
// review packages map onto HTTP statuses here, in one place, so handlers
// stay free of status-code arithmetic.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/bilgiconline/isealim/internal/auth"
	"github.com/bilgiconline/isealim/internal/botcheck"
	"github.com/bilgiconline/isealim/internal/intake"
	"github.com/bilgiconline/isealim/internal/store"
	"github.com/bilgiconline/isealim/internal/validate"
)

// ErrorResponse is the JSON structure for API error responses. Fields holds
// per-field validation messages when the form was rejected.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps err onto an HTTP status and writes the JSON error body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := ErrorResponse{Error: "internal server error"}

	var fieldErrs validate.FieldErrors
	var fileErr *validate.FileError
	var uploadErr *intake.UploadError
	var persistErr *intake.PersistError

	switch {
	case errors.As(err, &fieldErrs):
		status = http.StatusBadRequest
		body = ErrorResponse{Error: "validation failed", Fields: fieldErrs}

	case errors.As(err, &fileErr):
		status = http.StatusBadRequest
		body = ErrorResponse{Error: fileErr.Error()}

	case errors.Is(err, intake.ErrMissingFile):
		status = http.StatusBadRequest
		body = ErrorResponse{Error: "cv file is required"}

	case errors.Is(err, intake.ErrTooManySubmissions):
		status = http.StatusTooManyRequests
		body = ErrorResponse{Error: "too many concurrent submissions, please try again later"}
		w.Header().Set("Retry-After", "10")

	// Upload and persist failures are transient: the applicant did nothing
	// wrong and should simply retry.
	case errors.As(err, &uploadErr):
		status = http.StatusBadGateway
		body = ErrorResponse{Error: "could not store the cv file, please try again"}
		w.Header().Set("Retry-After", "10")

	case errors.As(err, &persistErr):
		status = http.StatusServiceUnavailable
		body = ErrorResponse{Error: "could not save the application, please try again"}
		w.Header().Set("Retry-After", "10")

	case errors.Is(err, botcheck.ErrVerificationFailed):
		status = http.StatusForbidden
		body = ErrorResponse{Error: "captcha verification failed"}

	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body = ErrorResponse{Error: "invalid email or password"}

	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		body = ErrorResponse{Error: "application not found"}
	}

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes a JSON error response with an explicit status.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Warn("request rejected",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", message,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it to w with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
