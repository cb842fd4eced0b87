// Package web serves the reports, author lookups, and co-authorship network
// of a loaded dataset over a read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/matsen/bibstat/internal/report"
	"github.com/matsen/bibstat/internal/storage"
	"golang.org/x/time/rate"
)

// Options configures a Server.
type Options struct {
	// RateLimit is the sustained number of requests per second across all
	// clients. Zero disables limiting.
	RateLimit float64
	RateBurst int
}

// Server is the HTTP host for one Store.
type Server struct {
	store   *storage.Store
	staff   report.Directory
	limiter *rate.Limiter
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server over store. staff may be nil.
func NewServer(store *storage.Store, staff report.Directory, opts Options) *Server {
	s := &Server{
		store:  store,
		staff:  staff,
		router: chi.NewRouter(),
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.limiter != nil {
		s.router.Use(rateLimit(s.limiter))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/network", s.handleNetworkPage)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{name}", s.handleReport)

		r.Get("/authors/{name}", s.handleAuthor)
		r.Get("/authors/{name}/coauthors", s.handleCoauthors)

		r.Get("/search", s.handleSearch)
		r.Get("/network", s.handleNetwork)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("starting server", "addr", addr, "dataset", s.store.DatasetID())
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

type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		logFor(r).Error("request failed", "status", status, "error", message)
	}
	writeJSONStatus(w, r, status, errorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	writeJSONStatus(w, r, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logFor(r).Error("json encode error", "error", err)
	}
}
