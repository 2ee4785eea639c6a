package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/colorhash/internal/config"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/swatch"
	"github.com/listenupapp/colorhash/pkg/colorhash"
)

const (
	// A color with both pools given inline depends only on the request.
	cacheImmutable = "public, max-age=31536000, immutable"
	// Otherwise the server's default palette fills the gaps and may change on restart.
	cacheServerDefaults = "public, max-age=300"
)

func (s *Server) registerColorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getColor",
		Method:      http.MethodGet,
		Path:        "/api/v1/colors",
		Summary:     "Color a value",
		Description: "Returns the HSL, RGB and hex color for a value",
		Tags:        []string{"Colors"},
	}, s.handleGetColor)

	huma.Register(s.api, huma.Operation{
		OperationID: "batchColors",
		Method:      http.MethodPost,
		Path:        "/api/v1/colors/batch",
		Summary:     "Color many values",
		Description: "Returns colors for up to 500 values, in request order",
		Tags:        []string{"Colors"},
	}, s.handleBatchColors)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSwatch",
		Method:      http.MethodGet,
		Path:        "/api/v1/colors/swatch",
		Summary:     "Color swatch",
		Description: "Renders the color of a value as a PNG tile",
		Tags:        []string{"Colors"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PNG tile",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}, s.handleGetSwatch)
}

// === DTOs ===

// ColorQuery selects the value and configuration through query parameters.
// Pools are comma-separated numbers.
type ColorQuery struct {
	Value      string `query:"value" doc:"Value to color"`
	Preset     string `query:"preset" doc:"Preset ID or slug"`
	Lightness  string `query:"lightness" doc:"Lightness pool, e.g. 0.35,0.5,0.65"`
	Saturation string `query:"saturation" doc:"Saturation pool, e.g. 0.35,0.5,0.65"`
	MinHue     string `query:"min_hue" doc:"Lower hue bound in degrees"`
	MaxHue     string `query:"max_hue" doc:"Upper hue bound in degrees"`
}

func (q ColorQuery) request() (service.ColorRequest, error) {
	req := service.ColorRequest{Preset: q.Preset}
	var err error

	if req.Lightness, err = parsePoolParam("lightness", q.Lightness); err != nil {
		return req, err
	}
	if req.Saturation, err = parsePoolParam("saturation", q.Saturation); err != nil {
		return req, err
	}
	if req.MinHue, err = parseHueParam("min_hue", q.MinHue); err != nil {
		return req, err
	}
	if req.MaxHue, err = parseHueParam("max_hue", q.MaxHue); err != nil {
		return req, err
	}
	return req, nil
}

// GetColorInput contains parameters for coloring one value.
type GetColorInput struct {
	ColorQuery
}

// ColorOutput wraps a color result for Huma.
type ColorOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *service.ColorResult
}

// BatchColorsRequest is the request body for coloring many values.
type BatchColorsRequest struct {
	Values     []string  `json:"values" doc:"Values to color"`
	Preset     string    `json:"preset,omitempty" doc:"Preset ID or slug"`
	Lightness  []float64 `json:"lightness,omitempty" doc:"Lightness pool override"`
	Saturation []float64 `json:"saturation,omitempty" doc:"Saturation pool override"`
	MinHue     *int      `json:"min_hue,omitempty" doc:"Lower hue bound override"`
	MaxHue     *int      `json:"max_hue,omitempty" doc:"Upper hue bound override"`
}

// BatchColorsInput wraps the batch request for Huma.
type BatchColorsInput struct {
	Body BatchColorsRequest
}

// BatchColorsResponse lists results in request order.
type BatchColorsResponse struct {
	Colors []*service.ColorResult `json:"colors"`
}

// BatchColorsOutput wraps the batch response for Huma.
type BatchColorsOutput struct {
	Body BatchColorsResponse
}

// GetSwatchInput contains parameters for rendering a swatch.
type GetSwatchInput struct {
	ColorQuery
	Width  int  `query:"width" minimum:"0" maximum:"1024" doc:"Tile width in pixels (default 120)"`
	Height int  `query:"height" minimum:"0" maximum:"1024" doc:"Tile height in pixels (default 25)"`
	Label  bool `query:"label" doc:"Draw the hex code on the tile"`
}

// === Handlers ===

func (s *Server) handleGetColor(ctx context.Context, input *GetColorInput) (*ColorOutput, error) {
	req, err := input.request()
	if err != nil {
		return nil, err
	}

	res, err := s.services.Colors.Compute(ctx, input.Value, req)
	if err != nil {
		return nil, err
	}
	return &ColorOutput{CacheControl: cacheControlFor(req), Body: res}, nil
}

func (s *Server) handleBatchColors(ctx context.Context, input *BatchColorsInput) (*BatchColorsOutput, error) {
	b := input.Body
	results, err := s.services.Colors.Batch(ctx, b.Values, service.ColorRequest{
		Preset:     b.Preset,
		Lightness:  b.Lightness,
		Saturation: b.Saturation,
		MinHue:     b.MinHue,
		MaxHue:     b.MaxHue,
	})
	if err != nil {
		return nil, err
	}
	return &BatchColorsOutput{Body: BatchColorsResponse{Colors: results}}, nil
}

func (s *Server) handleGetSwatch(ctx context.Context, input *GetSwatchInput) (*huma.StreamResponse, error) {
	req, err := input.request()
	if err != nil {
		return nil, err
	}

	res, err := s.services.Colors.Compute(ctx, input.Value, req)
	if err != nil {
		return nil, err
	}

	c := colorhash.RGB{R: uint8(res.RGB[0]), G: uint8(res.RGB[1]), B: uint8(res.RGB[2])} //#nosec G115 -- channels are 0..255
	opts := swatch.Options{Width: input.Width, Height: input.Height, Label: input.Label}

	png, err := swatch.PNG(c, opts)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}
	placeholder, err := swatch.Placeholder(c, opts)
	if err != nil {
		s.logger.Warn("swatch placeholder failed", "hex", res.Hex, "error", err)
	}

	cacheControl := cacheControlFor(req)
	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			hctx.SetHeader("Content-Type", "image/png")
			hctx.SetHeader("Content-Length", strconv.Itoa(len(png)))
			hctx.SetHeader("Cache-Control", cacheControl)
			hctx.SetHeader("X-Color-Hex", res.Hex)
			if placeholder != "" {
				hctx.SetHeader("X-Blurhash", placeholder)
			}
			if _, err := hctx.BodyWriter().Write(png); err != nil {
				s.logger.Debug("swatch write failed", "error", err)
			}
		},
	}, nil
}

// cacheControlFor allows long caching only when the request fully pins the
// palette. Presets can be edited, so they are never cached.
func cacheControlFor(req service.ColorRequest) string {
	switch {
	case req.Preset != "":
		return "no-cache"
	case len(req.Lightness) > 0 && len(req.Saturation) > 0:
		return cacheImmutable
	default:
		return cacheServerDefaults
	}
}

func parsePoolParam(name, raw string) ([]float64, error) {
	pool, err := config.ParsePool(raw)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails("invalid "+name+" pool", map[string]string{name: err.Error()})
	}
	return pool, nil
}

func parseHueParam(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails("invalid "+name, map[string]string{name: "must be an integer"})
	}
	return &v, nil
}
