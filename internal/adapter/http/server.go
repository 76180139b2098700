package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vivmon/viveiro-dashboard/internal/domain"
	"github.com/vivmon/viveiro-dashboard/internal/pipeline"
)

// Renderer runs dashboard render passes on behalf of API requests.
type Renderer interface {
	Render(ctx context.Context, f domain.FilterState) (*pipeline.View, error)
	NearestUnit(ctx context.Context, lat, lon float64, f domain.FilterState) (*pipeline.NearestView, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	renderer   Renderer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the dashboard routes.
func NewServer(addr string, renderer Renderer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		renderer: renderer,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/nearest", s.handleNearest)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.renderer.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := s.renderer.Render(r.Context(), filter)
	if err != nil {
		s.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := requireFloat(q, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lon, err := requireFloat(q, "lng")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	filter, err := parseFilter(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := s.renderer.NearestUnit(r.Context(), lat, lon, filter)
	if err != nil {
		s.renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// renderError maps pass failures to status codes: an unreachable or
// unparsable sheet is the upstream's fault, everything else is ours.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrSourceUnavailable) {
		s.logger.Warn("render pass failed", "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.logger.Error("render pass failed", "error", err)
	writeError(w, http.StatusInternalServerError, err)
}

// parseFilter builds the filter state from query parameters. A present
// years/months parameter turns the corresponding toggle on, even when its
// value list is empty; an absent parameter leaves the dimension unfiltered.
func parseFilter(q url.Values) (domain.FilterState, error) {
	var f domain.FilterState

	if q.Has("years") {
		f.FilterYears = true
		for _, s := range splitParam(q.Get("years")) {
			y, err := strconv.Atoi(s)
			if err != nil {
				return domain.FilterState{}, &paramError{"years", s}
			}
			f.Years = append(f.Years, y)
		}
	}
	if q.Has("months") {
		f.FilterMonths = true
		f.Months = splitParam(q.Get("months"))
	}
	if q.Has("occurrences") {
		f.Occurrences = splitParam(q.Get("occurrences"))
	}
	f.Query = q.Get("q")

	return f, nil
}

func splitParam(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func requireFloat(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, &paramError{name, "(missing)"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &paramError{name, raw}
	}
	return v, nil
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid parameter " + e.name + ": " + e.value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
