package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}
		}

		// Request decoding and schema failures list their locations.
		var details map[string]string
		for _, err := range errs {
			var detail *huma.ErrorDetail
			if errors.As(err, &detail) {
				if details == nil {
					details = make(map[string]string)
				}
				details[detail.Location] = detail.Message
			}
		}

		apiErr := &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
		if details != nil {
			apiErr.Details = details
		}
		return apiErr
	}
}

// statusToCode maps HTTP status codes to our domain error codes.
// Huma reports schema violations as 422; they are request validation
// failures, not colorhash range errors.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeAlreadyExists)
	case http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	default:
		return string(domainerrors.CodeInternal)
	}
}
