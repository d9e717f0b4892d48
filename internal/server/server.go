// Package server exposes the self-refine pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zjjtools/mededu/internal/llm"
	"github.com/zjjtools/mededu/internal/patient"
	"github.com/zjjtools/mededu/internal/pipeline"
)

// requestTimeout bounds a whole inbound request. The refine cycle makes two
// sequential upstream calls, so it sits above the per-call upstream timeout.
const requestTimeout = 150 * time.Second

// Generator is the slice of the pipeline the HTTP layer depends on.
type Generator interface {
	ProduceDraft(ctx context.Context, rec patient.Record) (string, error)
	Refine(ctx context.Context, rec patient.Record, draft string) (pipeline.Result, error)
}

// Server holds the handlers for the education endpoints.
type Server struct {
	gen Generator
}

// New creates a server over the given generator.
func New(gen Generator) *Server {
	return &Server{gen: gen}
}

// Handler builds the router with the standard middleware stack. CORS is wide
// open; restricting origins is a deployment concern, not part of the service
// contract.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Post("/api/v1", s.handleDraft)
	r.Post("/api/refine", s.handleRefine)
	r.Get("/ping", s.handlePing)

	return r
}

type draftRequest struct {
	Patient patient.Record `json:"patient"`
}

type draftResponse struct {
	V1 string `json:"v1"`
}

type refineRequest struct {
	Patient patient.Record `json:"patient"`
	V1      string         `json:"v1"`
}

type refineResponse struct {
	Feedback string `json:"feedback"`
	V3       string `json:"v3"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := req.Patient.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v1, err := s.gen.ProduceDraft(r.Context(), req.Patient)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draftResponse{V1: v1})
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := req.Patient.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.V1) == "" {
		writeError(w, http.StatusBadRequest, "field \"v1\" is required")
		return
	}

	res, err := s.gen.Refine(r.Context(), req.Patient, req.V1)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refineResponse{Feedback: res.Feedback, V3: res.Refined})
}

// handlePing is the liveness probe. It answers from memory and never touches
// the upstream endpoint.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "pong")
}

// writePipelineError maps pipeline failures onto the uniform error body.
// Upstream endpoint failures become 502; everything else, including an
// unparseable critique, stays an internal 500.
func writePipelineError(w http.ResponseWriter, err error) {
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
