package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/abhisek/numbernexus/internal/i18n"
)

// RouterConfig configures the outer middleware stack.
type RouterConfig struct {
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
	Translator  *i18n.Translator
}

// Router builds the HTTP handler: API routes under /api and Prometheus
// metrics under /metrics.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept-Language"},
		MaxAge:         300,
	}).Handler)
	r.Use(h.metrics.Middleware)

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(cfg.RateLimit, cfg.RateWindow))
		if cfg.Translator != nil {
			r.Use(cfg.Translator.Middleware)
		}
		h.Routes(r)
	})
	return r
}
