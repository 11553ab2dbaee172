// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the conversion core over HTTP. A conversion request
// streams its outcomes back as newline-delimited JSON, one object per event.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/pdiddy/formatforge/internal/history"
	"github.com/pdiddy/formatforge/pkg/types"
)

const defaultAddr = "127.0.0.1:8080"

// Submitter starts conversion jobs.
type Submitter interface {
	Submit(ctx context.Context, job types.ConversionJob) <-chan types.Outcome
}

// HistoryLister lists finished jobs.
type HistoryLister interface {
	List(ctx context.Context, opts history.ListOptions) ([]types.Record, error)
}

// Server wires HTTP handlers to the dispatcher and the job ledger.
type Server struct {
	dispatcher Submitter
	history    HistoryLister
	cfg        types.ServerConfig
	logger     *slog.Logger
}

// New creates a Server. hist may be nil when the ledger is disabled.
func New(d Submitter, hist HistoryLister, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	return &Server{dispatcher: d, history: hist, cfg: cfg, logger: logger}
}

// Handler returns the routed handler. Cross-origin requests are allowed only
// from cfg.AllowedOrigins; with none configured, browsers get no CORS
// headers and refuse cross-origin calls.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/convert", s.Convert).Methods(http.MethodPost)
	r.HandleFunc("/api/detect", s.Detect).Methods(http.MethodGet)
	r.HandleFunc("/api/targets/{source}", s.Targets).Methods(http.MethodGet)
	r.HandleFunc("/api/history", s.History).Methods(http.MethodGet)

	if len(s.cfg.AllowedOrigins) == 0 {
		return r
	}
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
