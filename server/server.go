// Package server exposes the spelling engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spellbind/spellbind"
	"github.com/spellbind/spellbind/verbosity"
)

// Server is the HTTP API over an immutable spelling engine. The engine is
// read-only, so handlers share it without locking.
type Server struct {
	engine *spellbind.Engine
	logger *log.Logger
	server *http.Server
}

// New creates a server for the given engine.
func New(engine *spellbind.Engine, logger *log.Logger) *Server {
	return &Server{
		engine: engine,
		logger: logger,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/api/v1/lookup", s.handleLookup)
	r.Get("/api/v1/compound", s.handleCompound)
	r.Get("/health", s.handleHealth)

	return r
}

// Start serves the API on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		s.respondError(w, http.StatusBadRequest, "missing term parameter")
		return
	}

	verb := verbosity.Top
	if name := r.URL.Query().Get("verbosity"); name != "" {
		var ok bool
		if verb, ok = verbosity.Parse(name); !ok {
			s.respondError(w, http.StatusBadRequest, "unknown verbosity: "+name)
			return
		}
	}

	maxEditDistance, err := s.maxDistanceParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := s.engine.LookupEditDistance(term, verb, maxEditDistance)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"term": term, "suggestions": suggestions})
}

func (s *Server) handleCompound(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		s.respondError(w, http.StatusBadRequest, "missing term parameter")
		return
	}

	maxEditDistance, err := s.maxDistanceParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := s.engine.LookupCompoundWithEditDistance(term, maxEditDistance)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"term": term, "suggestions": suggestions})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"words":  s.engine.WordCount(),
	})
}

func (s *Server) maxDistanceParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("max")
	if raw == "" {
		return s.engine.MaxDictionaryEditDistance(), nil
	}
	maxEditDistance, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("max must be an integer")
	}
	return maxEditDistance, nil
}

func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spellbind.ErrInvalidArgument):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, spellbind.ErrNotInitialized):
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("lookup failed", "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("writing response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
