// Package api provides the HTTP API server and handlers for the colorhash service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/colorhash/internal/auth"
	"github.com/listenupapp/colorhash/internal/http/response"
	"github.com/listenupapp/colorhash/internal/ratelimit"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/store"
)

// Services groups the business logic used by the API server.
type Services struct {
	Colors  *service.ColorService
	Presets *service.PresetService
	Tokens  *auth.TokenService
}

// Options configures the server surface.
type Options struct {
	Title       string
	Version     string
	CORSOrigins []string

	// RateLimiter limits requests per client IP. Nil disables limiting.
	RateLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	limiter  *ratelimit.KeyedRateLimiter
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.Title == "" {
		opts.Title = "colorhash API"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		store:    st,
		services: services,
		router:   chi.NewRouter(),
		limiter:  opts.RateLimiter,
		logger:   logger,
	}

	s.setupMiddleware(opts.CORSOrigins)

	s.api = humachi.New(s.router, newHumaConfig(opts.Title, opts.Version))
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerColorRoutes()
	s.registerConvertRoutes()
	s.registerPresetRoutes()

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "method not allowed", s.logger)
	})

	return s
}

func newHumaConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	cfg.Transformers = append(cfg.Transformers, EnvelopeTransformer)
	return cfg
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Color-Hex", "X-Blurhash", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}
