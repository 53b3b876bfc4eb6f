// Package server exposes the retrieval engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/schemascope/internal/retrieval"
)

// Server serves the retrieval API.
type Server struct {
	manager *retrieval.Manager
	addr    string
	logger  *slog.Logger
}

// Config holds server settings.
type Config struct {
	Manager *retrieval.Manager
	Addr    string
	Logger  *slog.Logger
}

// New creates an API server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		manager: cfg.Manager,
		addr:    cfg.Addr,
		logger:  logger,
	}
}

// Routes builds the HTTP handler. Split from Serve so tests can exercise
// the API without binding a port.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schema", s.handleSchema)
		r.Get("/strategies", s.handleStrategies)
		r.Get("/summary", s.handleSummary)
		r.Post("/compare", s.handleCompare)
		r.Post("/refresh", s.handleRefresh)
	})
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSchema answers GET /api/v1/schema?query=...&strategy=...
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	strategy := r.URL.Query().Get("strategy")

	res, err := s.manager.Retrieve(r.Context(), query, strategy)
	if err != nil {
		s.writeRetrievalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"strategies": s.manager.Strategies()})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"strategies": s.manager.Summary()})
}

type compareRequest struct {
	Query      string   `json:"query"`
	Strategies []string `json:"strategies,omitempty"`
}

// handleCompare answers POST /api/v1/compare with a query and optional
// strategy list.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := s.manager.Compare(r.Context(), req.Query, req.Strategies)
	if err != nil {
		s.writeRetrievalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": req.Query, "results": results})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Refresh(r.Context()); err != nil {
		s.writeRetrievalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) writeRetrievalError(w http.ResponseWriter, err error) {
	if errors.Is(err, retrieval.ErrSchemaUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.logger.Error("retrieval request failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
