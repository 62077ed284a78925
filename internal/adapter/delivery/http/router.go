// Package http provides the HTTP delivery layer of the link service: the
// public redirect endpoint and the owner-scoped link management API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/trimmer/internal/analytics"
)

type routerOptions struct {
	baseURL        string
	allowedOrigins []string
	recorderStats  func() analytics.Stats
}

type Option func(*routerOptions)

// WithBaseURL sets the public origin used to render short URLs.
func WithBaseURL(baseURL string) Option {
	return func(o *routerOptions) {
		o.baseURL = baseURL
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(o *routerOptions) {
		o.allowedOrigins = origins
	}
}

// WithRecorderStats exposes click recorder counters on the health endpoint.
func WithRecorderStats(stats func() analytics.Stats) Option {
	return func(o *routerOptions) {
		o.recorderStats = stats
	}
}

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the link API.
func NewRouter(logger *httplog.Logger, linkUseCase linkUseCase, opts ...Option) *chi.Mux {
	o := routerOptions{
		allowedOrigins: []string{"https://*"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   o.allowedOrigins,
		AllowedMethods:   []string{"POST", "GET", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", ownerHeader},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	h := newLinkHandler(linkUseCase, validator.New(), o.baseURL)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)
		r.Get("/health", handleHealth(o.recorderStats))

		r.Route("/links", func(r chi.Router) {
			r.Use(requireOwner)

			r.Post("/", h.createLink)
			r.Get("/", h.listLinks)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getLink)
				r.Patch("/", h.updateTitle)
				r.Get("/stats", h.getLinkStats)
			})
		})
	})

	r.Get("/{key}", h.redirect)

	return r
}
