package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/Muizzyranking/drf-auth/pkg/errors"
	"github.com/Muizzyranking/drf-auth/pkg/logger"
	"github.com/Muizzyranking/drf-auth/pkg/validator"
)

// MessageResponse is the uniform body for status-only and error responses:
// a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} body with the given status code.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// WriteError recovers any error at the request boundary into a uniform
// {"message": ...} body with the mapped status. AppErrors carry their own
// status and message; validation errors report the first failed field;
// anything unrecognized becomes a logged 500. It prefers the request-scoped
// logger from context (set by the RequestLogger middleware) over the fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteMessage(w, appErr.Status, appErr.Message)
		return
	}

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteMessage(w, http.StatusBadRequest, valErr.Message())
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		message = "unauthorized"
	}

	if status == http.StatusInternalServerError {
		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteMessage(w, status, message)
}

// NotFound is the fallback handler for unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteMessage(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed is the fallback handler for known routes hit with the
// wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}
