// Package httpapi exposes the planner over HTTP for non-interactive use.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/ideas"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
)

// Server routes planner requests.
type Server struct {
	flow   *ideas.Flow
	router *mux.Router
	log    logr.Logger
}

// NewServer creates a Server around the idea flow.
func NewServer(flow *ideas.Flow, log logr.Logger) *Server {
	s := &Server{flow: flow, log: log}
	s.router = mux.NewRouter()
	s.setupRoutes()
	return s
}

// Build wraps the router in an http.Server listening on addr.
func (s *Server) Build(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/ideas", s.handleIdeas).Methods(http.MethodPost)
	s.router.HandleFunc("/api/itinerary", s.handleItinerary).Methods(http.MethodPost)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type ideasRequest struct {
	SeedPrompt  string                 `json:"seed_prompt,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	var req ideasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := s.flow.ListIdeas(r.Context(), req.SeedPrompt, req.Preferences)
	if err != nil {
		s.log.Error(err, "idea generation failed")
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request) {
	var req schema.ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Destinations) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one destination is required")
		return
	}

	itinerary, err := s.flow.SeedAndFinish(r.Context(), &req)
	if err != nil {
		s.log.Error(err, "itinerary assembly failed")
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, itinerary)
}

// statusFor maps the error taxonomy onto HTTP statuses: caller mistakes are
// 4xx, backend trouble is 502.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeIndexOutOfRange, apperrors.ErrCodeMissingField:
		return http.StatusBadRequest
	case apperrors.ErrCodeExternalService, apperrors.ErrCodeSchemaParse, apperrors.ErrCodeSchemaValidation, apperrors.ErrCodeUnknownTool:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error(err, "writing response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
