package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rohinthram/sanskrita-saarathi/internal/agent"
	"github.com/rohinthram/sanskrita-saarathi/internal/database"
)

// Server exposes the record-access toolset over HTTP so an external agent
// runtime can drive it. Every response body is a Result envelope; transport
// status codes carry no information beyond routing failures.
type Server struct {
	mgr        *database.Manager
	toolset    *agent.Toolset
	router     *chi.Mux
	httpServer *http.Server
}

// NewServer builds the tool server over a manager.
func NewServer(mgr *database.Manager) *Server {
	s := &Server{
		mgr:     mgr,
		toolset: agent.NewToolset(mgr),
		router:  chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleInvokeTool)
		r.Get("/agents", s.handleListAgents)
	})
}

// Router returns the HTTP handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving on the given bind address and port, blocking until
// the server stops.
func (s *Server) Start(bind string, port int) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bind, port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", s.httpServer.Addr).Msg("Tool server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("tool server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := s.mgr.HealthCheck()
	code := http.StatusOK
	if !res.OK() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, res)
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools := s.toolset.Tools()
	writeJSON(w, http.StatusOK, database.Successf(tools, "%d tools available", len(tools)))
}

func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, database.Errorf("Request body too large or unreadable: %v", err))
		return
	}

	res, ok := s.toolset.Invoke(name, body)
	if !ok {
		writeJSON(w, http.StatusNotFound, database.Errorf("Tool '%s' not found", name))
		return
	}

	// Tool outcomes, success or error, ride on 200: the caller is an agent
	// that branches on the envelope's status field.
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	defs := agent.Definitions()
	writeJSON(w, http.StatusOK, database.Successf(defs, "%d agent definitions", len(defs)))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
