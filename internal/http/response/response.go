// Package response writes the JSON envelope used by plain net/http handlers
// that sit outside the huma API, such as middleware and router fallbacks.
package response

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

// Version is the envelope format version, sent as "v".
const Version = 1

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	write(w, status, Envelope{
		Version: Version,
		Success: status < 400,
		Data:    data,
	}, logger)
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	write(w, status, Envelope{
		Version: Version,
		Error:   message,
		Code:    string(codeForStatus(status)),
	}, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, logger)
}

// MethodNotAllowed writes a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusMethodNotAllowed, message, logger)
}

// TooManyRequests writes a 429 response. A positive retryAfter is sent as
// a Retry-After header rounded up to whole seconds.
func TooManyRequests(w http.ResponseWriter, message string, retryAfter time.Duration, logger *slog.Logger) {
	if retryAfter > 0 {
		secs := int((retryAfter + time.Second - 1) / time.Second)
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	Error(w, http.StatusTooManyRequests, message, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Domain errors keep their code, message and details; unknown errors become 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var de *domainerrors.Error
	if errors.As(err, &de) {
		write(w, de.HTTPStatus(), Envelope{
			Version: Version,
			Error:   de.Message,
			Code:    string(de.Code),
			Details: de.Details,
		}, logger)
		return
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	Error(w, http.StatusInternalServerError, "internal server error", logger)
}

func write(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.MarshalWrite(w, env); err != nil && logger != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func codeForStatus(status int) domainerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return domainerrors.CodeValidation
	case http.StatusUnauthorized:
		return domainerrors.CodeUnauthorized
	case http.StatusForbidden:
		return domainerrors.CodeForbidden
	case http.StatusNotFound:
		return domainerrors.CodeNotFound
	case http.StatusConflict:
		return domainerrors.CodeAlreadyExists
	case http.StatusUnprocessableEntity:
		return domainerrors.CodeOutOfRange
	case http.StatusTooManyRequests:
		return domainerrors.CodeRateLimited
	case http.StatusMethodNotAllowed:
		return domainerrors.CodeInvalidArgument
	default:
		return domainerrors.CodeInternal
	}
}
