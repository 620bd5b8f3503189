// Package handler serves the JSON API used by the browser front end.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/metrics"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/stats"
)

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds shared dependencies for HTTP handlers.
type Deps struct {
	Store     Pinger
	Stats     *stats.Service
	Dashboard *dashboard.Builder
	Generator *problemgen.Generator
	Hints     *hints.Classifier
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Version   string
}

// Handler implements the API endpoints.
type Handler struct {
	store     Pinger
	stats     *stats.Service
	dashboard *dashboard.Builder
	gen       *problemgen.Generator
	hints     *hints.Classifier
	metrics   *metrics.Metrics
	logger    *zap.Logger
	version   string
	schemas   *schemas
}

// New creates a Handler. Generator and Hints default to the compiled-in
// configuration.
func New(d Deps) (*Handler, error) {
	sc, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	if d.Generator == nil {
		d.Generator = problemgen.New(problemgen.DefaultConfig())
	}
	if d.Hints == nil {
		d.Hints = hints.New(hints.DefaultConfig())
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Handler{
		store:     d.Store,
		stats:     d.Stats,
		dashboard: d.Dashboard,
		gen:       d.Generator,
		hints:     d.Hints,
		metrics:   d.Metrics,
		logger:    d.Logger,
		version:   d.Version,
		schemas:   sc,
	}, nil
}

// Routes registers all API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/problems", h.handleProblems)
	r.Get("/hints", h.handleHint)

	r.Route("/students", func(r chi.Router) {
		r.Get("/", h.handleListStudents)
		r.Post("/", h.handleCreateStudent)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetStudent)
			r.Delete("/", h.handleDeleteStudent)
			r.Put("/difficulty", h.handleSetDifficulty)
			r.Post("/solves", h.handleSolve)
			r.Post("/drills", h.handleDrill)
			r.Post("/reset", h.handleReset)
			r.Get("/topics", h.handleTopics)
			r.Get("/dashboard", h.handleDashboard)
		})
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := map[string]any{"status": "ok", "version": h.version}
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			resp["status"] = "unavailable"
		}
	}
	writeJSON(w, status, resp)
}
