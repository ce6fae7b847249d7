// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	scholarmatch "github.com/poiesic/scholarmatch"
	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/deadline"
	"github.com/poiesic/scholarmatch/flow"
	"github.com/poiesic/scholarmatch/storage"
)

const requestTimeout = 60 * time.Second

// Server exposes the matching engine over HTTP.
type Server struct {
	engine *scholarmatch.Engine
	router *chi.Mux
	logger *slog.Logger
}

// NewServer builds the HTTP surface around an engine.
func NewServer(engine *scholarmatch.Engine) *Server {
	s := &Server{
		engine: engine,
		logger: slog.Default().With("component", "server"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/api/v1/health", s.handleHealth)

	r.Post("/api/v1/match", s.handleMatch)

	r.Route("/api/v1/flow", func(r chi.Router) {
		r.Get("/start", s.handleFlowStart)
		r.Post("/step", s.handleFlowStep)
	})

	r.Route("/api/v1/scholarships", func(r chi.Router) {
		r.Get("/", s.handleListScholarships)
		r.Put("/{scholarshipId}", s.handlePutScholarship)
		r.Get("/{scholarshipId}", s.handleGetScholarship)
		r.Delete("/{scholarshipId}", s.handleDeleteScholarship)
	})

	r.Get("/api/v1/deadline", s.handleDeadline)
	r.Post("/api/v1/reindex", s.handleReindex)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"indexed": s.engine.Index().Len(),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile  *core.Profile      `json:"profile"`
		Strategy core.MatchStrategy `json:"strategy,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Profile == nil {
		respondError(w, http.StatusBadRequest, "profile is required", nil)
		return
	}

	useSemantic := req.Strategy != core.StrategyRuleBased
	response, err := s.engine.Match(r.Context(), req.Profile, useSemantic)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "matching failed", err)
		return
	}
	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleFlowStart(w http.ResponseWriter, r *http.Request) {
	result := s.engine.Flow().Start()
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleFlowStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State  *flow.State `json:"state"`
		StepId flow.StepId `json:"stepId"`
		Answer string      `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.State == nil {
		respondError(w, http.StatusBadRequest, "state is required", nil)
		return
	}

	result, err := s.engine.Flow().Advance(r.Context(), req.State, req.StepId, req.Answer)
	switch {
	case errors.Is(err, flow.ErrInvalidState):
		// Corrupt state cannot be repaired, hand the client a fresh flow.
		respondJSON(w, http.StatusOK, s.engine.Flow().Start())
	case errors.Is(err, flow.ErrUnknownStep),
		errors.Is(err, flow.ErrStepNotReached),
		errors.Is(err, flow.ErrFlowComplete):
		respondError(w, http.StatusBadRequest, "invalid flow step", err)
	case err != nil:
		respondError(w, http.StatusInternalServerError, "flow step failed", err)
	default:
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleListScholarships(w http.ResponseWriter, r *http.Request) {
	scholarships, err := s.engine.Store().List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list scholarships", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"scholarships": scholarships,
		"total":        len(scholarships),
	})
}

func (s *Server) handlePutScholarship(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scholarshipId")

	var scholarship core.Scholarship
	if err := json.NewDecoder(r.Body).Decode(&scholarship); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	scholarship.Id = id

	stored, err := s.engine.Store().Put(r.Context(), &scholarship)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to store scholarship", err)
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

func (s *Server) handleGetScholarship(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scholarshipId")

	scholarship, err := s.engine.Store().Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "scholarship not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load scholarship", err)
		return
	}
	respondJSON(w, http.StatusOK, scholarship)
}

func (s *Server) handleDeleteScholarship(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scholarshipId")

	err := s.engine.Store().Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "scholarship not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete scholarship", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleDeadline(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondError(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	days := deadline.DaysUntil(date)
	respondJSON(w, http.StatusOK, map[string]any{
		"date":     date,
		"daysLeft": days,
		"status":   deadline.StatusOf(date),
	})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Indexer().Reindex(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "reindex failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"indexed": s.engine.Index().Len(),
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
