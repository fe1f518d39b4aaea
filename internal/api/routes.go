// Package api serves the upload form and the HTTP API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/jobs"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     logger.Logger
}

// NewRouter creates a new API router
func NewRouter(proc processor.Processor, queue jobs.Queue, cfg *config.Config, log logger.Logger) (*Router, error) {
	handler, err := NewHandler(proc, queue, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Router{
		handler:    handler,
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log,
	}, nil
}

// Routes returns the HTTP routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// Web form
	router.Get("/", r.handler.Index)
	router.Post("/minutes", r.handler.CreateMinutesForm)
	router.Get("/documents/{name}", r.handler.DownloadDocument)

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		router.Post("/minutes", r.handler.CreateMinutes)

		// Asynchronous jobs
		router.Post("/jobs", r.handler.SubmitJob)
		router.Get("/jobs", r.handler.ListJobs)
		router.Get("/jobs/{id}", r.handler.GetJob)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
