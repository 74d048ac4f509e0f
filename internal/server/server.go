// Package server provides the HTTP API for screening résumés.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/screener/internal/config"
	"github.com/hyperjump/screener/internal/extract"
	"github.com/hyperjump/screener/internal/screening"
	"github.com/hyperjump/screener/pkg/utils"
)

// Server is the HTTP server for the screening API.
type Server struct {
	screener  *screening.Screener
	sessions  *screening.SessionStore
	extractor *extract.Extractor
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	screener *screening.Screener,
	sessions *screening.SessionStore,
	extractor *extract.Extractor,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		screener:  screener,
		sessions:  sessions,
		extractor: extractor,
		config:    cfg,
		logger:    utils.OrNop(logger),
	}
}

// Router returns the API routes wrapped in the standard middleware stack.
func (s *Server) Router() http.Handler {
	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1/screenings", func(r chi.Router) {
		r.Post("/", s.handleCreateScreening)
		r.Get("/{id}", s.handleGetScreening)
		r.Get("/{id}/candidates/{index}", s.handleGetCandidate)
		r.Get("/{id}/search", s.handleSearchCandidates)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr), zap.String("scoring_mode", s.screener.ScoringMode()))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
