package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/colorhash/internal/service"
)

func (s *Server) registerConvertRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "convertHSL",
		Method:      http.MethodPost,
		Path:        "/api/v1/convert/hsl",
		Summary:     "Convert HSL",
		Description: "Converts an HSL color to RGB and hex",
		Tags:        []string{"Convert"},
	}, s.handleConvertHSL)

	huma.Register(s.api, huma.Operation{
		OperationID: "convertRGB",
		Method:      http.MethodPost,
		Path:        "/api/v1/convert/rgb",
		Summary:     "Convert RGB",
		Description: "Formats an [r, g, b] triple as hex",
		Tags:        []string{"Convert"},
	}, s.handleConvertRGB)
}

// ConvertHSLRequest is an HSL color. Range checks happen in the service so
// every channel error is reported at once.
type ConvertHSLRequest struct {
	H float64 `json:"h" doc:"Hue in degrees [0, 360]"`
	S float64 `json:"s" doc:"Saturation [0, 1]"`
	L float64 `json:"l" doc:"Lightness [0, 1]"`
}

// ConvertHSLInput wraps the HSL request for Huma.
type ConvertHSLInput struct {
	Body ConvertHSLRequest
}

// ConvertRGBRequest carries the channels as a list so a wrong arity can be
// reported instead of silently padded.
type ConvertRGBRequest struct {
	RGB []int `json:"rgb" doc:"Channels [r, g, b], each 0..255"`
}

// ConvertRGBInput wraps the RGB request for Huma.
type ConvertRGBInput struct {
	Body ConvertRGBRequest
}

// ConvertOutput wraps a conversion result for Huma.
type ConvertOutput struct {
	Body *service.ConvertResult
}

func (s *Server) handleConvertHSL(_ context.Context, input *ConvertHSLInput) (*ConvertOutput, error) {
	res, err := s.services.Colors.ConvertHSL(input.Body.H, input.Body.S, input.Body.L)
	if err != nil {
		return nil, err
	}
	return &ConvertOutput{Body: res}, nil
}

func (s *Server) handleConvertRGB(_ context.Context, input *ConvertRGBInput) (*ConvertOutput, error) {
	res, err := s.services.Colors.ConvertRGB(input.Body.RGB)
	if err != nil {
		return nil, err
	}
	return &ConvertOutput{Body: res}, nil
}
