package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
)

// Error codes returned in APIError.Code.
const (
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeBadRequest           = "BAD_REQUEST"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL_ERROR"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newError(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message}
}

func errUnauthorized() *APIError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, "authentication required")
}

func errSubscriptionRequired() *APIError {
	return newError(http.StatusPaymentRequired, CodeSubscriptionRequired, "an active subscription is required")
}

func errBadRequest(message string) *APIError {
	return newError(http.StatusBadRequest, CodeBadRequest, message)
}

func errValidation(fields []FieldError) *APIError {
	e := newError(http.StatusBadRequest, CodeValidationFailed, "request validation failed")
	e.Details = fields
	return e
}

// fail renders err, mapping store sentinels onto status codes. Anything
// unrecognised is logged and reported as an internal error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, journal.ErrNotFound):
		apiErr = newError(http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, journal.ErrDuplicateEmail):
		apiErr = newError(http.StatusConflict, CodeConflict, err.Error())
	default:
		s.log.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID(r)),
		)
		apiErr = newError(http.StatusInternalServerError, CodeInternal, "internal server error")
	}
	_ = render.Render(w, r, apiErr)
}
