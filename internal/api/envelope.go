package api

import (
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/http/response"
)

// EnvelopeVersion is sent as "v" in every JSON response.
const EnvelopeVersion = response.Version

// APIEnvelope wraps successful responses and plain errors.
type APIEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps coded errors.
type APIErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps every JSON body.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case APIEnvelope, APIErrorEnvelope, []byte:
		return v, nil
	case *APIError:
		return codedEnvelope(body.Code, body.Message, body.Details), nil
	case *domainerrors.Error:
		return codedEnvelope(string(body.Code), body.Message, body.Details), nil
	case error:
		var de *domainerrors.Error
		if errors.As(body, &de) {
			return codedEnvelope(string(de.Code), de.Message, de.Details), nil
		}
		return APIEnvelope{Version: EnvelopeVersion, Error: body.Error()}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: strings.HasPrefix(status, "2"),
		Data:    v,
	}, nil
}

func codedEnvelope(code, message string, details any) APIErrorEnvelope {
	return APIErrorEnvelope{
		Version: EnvelopeVersion,
		Error:   message,
		Code:    code,
		Message: message,
		Details: details,
	}
}
