// Package web provides the HTTP boundary: upload intake, record CRUD
// pass-throughs, and the aggregation views as JSON. Charts and tables are
// rendered by a separate frontend; this layer only moves data.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/statops/permitdesk/internal/config"
	"github.com/statops/permitdesk/internal/store"
	"github.com/statops/permitdesk/internal/summary"
)

// Server is the HTTP server for the reporting service.
type Server struct {
	records     store.RecordStore
	departments store.DepartmentStore
	summarizer  summary.Summarizer
	cfg         *config.Config
	router      *chi.Mux
	server      *http.Server
}

// NewServer wires stores and config into a routed server.
func NewServer(cfg *config.Config, records store.RecordStore, departments store.DepartmentStore, summarizer summary.Summarizer) *Server {
	s := &Server{
		records:     records,
		departments: departments,
		summarizer:  summarizer,
		cfg:         cfg,
		router:      chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Upload intake
		r.Post("/upload", s.handleUpload)

		// Record pass-throughs
		r.Get("/records", s.handleListRecords)
		r.Post("/records", s.handleCreateRecord)
		r.Get("/records/{id}", s.handleGetRecord)
		r.Put("/records/{id}", s.handleUpdateRecord)
		r.Delete("/records/{id}", s.handleDeleteRecord)

		// Department roster
		r.Get("/departments", s.handleListDepartments)

		// Aggregation views
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/type-counts", s.handleTypeCounts)
			r.Get("/channels", s.handleChannels)
			r.Get("/processing-time", s.handleProcessingTime)
			r.Get("/applications", s.handleApplications)
			r.Get("/revenue", s.handleRevenue)
			r.Get("/summary", s.handleSummary)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
