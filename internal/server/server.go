// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the analysis pipeline and the document library
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/docsight/internal/analyze"
	"github.com/pdiddy/docsight/internal/convert"
	"github.com/pdiddy/docsight/internal/store"
	"github.com/pdiddy/docsight/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Server routes API requests to the analyzer and the library.
type Server struct {
	analyzer  *analyze.Analyzer
	library   *store.Store
	converter convert.Converter
	cfg       types.ServerConfig
	logger    *slog.Logger
	router    *chi.Mux
}

// New returns a Server with its routes registered.
func New(a *analyze.Analyzer, library *store.Store, c convert.Converter, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = types.DefaultConfig().Server.MaxUploadBytes
	}

	s := &Server{
		analyzer:  a,
		library:   library,
		converter: c,
		cfg:       cfg,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/keywords/detect", s.handleDetectKeywords)
		r.Post("/keywords", s.handleKeywords)
		r.Post("/sentiment", s.handleSentiment)
		r.Post("/summary", s.handleSummary)
		r.Post("/conceptmap", s.handleConceptMap)

		r.Post("/documents", s.handleCreateDocument)
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}", s.handleGetDocument)
		r.Delete("/documents/{id}", s.handleDeleteDocument)

		r.Get("/search", s.handleSearch)
		r.Get("/export", s.handleExport)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
