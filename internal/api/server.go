// Package api exposes the daily-lesson service over HTTP JSON endpoints.
// Routing, parameter validation, and status-code mapping live here; all
// lesson semantics live in the lesson service.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goalgrid/goalgrid/internal/lesson"
	"github.com/goalgrid/goalgrid/internal/store"
)

// Server is the HTTP API server.
type Server struct {
	svc      lesson.Service
	lessons  store.LessonStore
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *httpMetrics
}

// NewServer creates an API server. The registry may be shared with other
// subsystems (the oracle metrics observer registers against the same one).
func NewServer(svc lesson.Service, lessons store.LessonStore, logger *slog.Logger, registry *prometheus.Registry) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
	}
	return &Server{
		svc:      svc,
		lessons:  lessons,
		logger:   logger,
		registry: registry,
		metrics:  newHTTPMetrics(registry),
	}
}

// Registry returns the server's Prometheus registry.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

// Routes configures and returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, http.MethodPost, "/create_lesson", s.handleCreateLesson)
	s.handle(mux, http.MethodPost, "/generate_tasks", s.handleGenerateTasks)
	s.handle(mux, http.MethodPost, "/regenerate_tasks", s.handleRegenerateTasks)
	s.handle(mux, http.MethodPost, "/regenerate_lesson", s.handleRegenerateLesson)
	s.handle(mux, http.MethodPost, "/complete_task", s.handleCompleteTask)
	s.handle(mux, http.MethodGet, "/lesson", s.handleGetLesson)
	s.handle(mux, http.MethodGet, "/todays_tasks", s.handleTodaysTasks)
	s.handle(mux, http.MethodGet, "/summarize_lesson", s.handleSummarizeLesson)
	s.handle(mux, http.MethodGet, "/all_users", s.handleAllUsers)
	s.handle(mux, http.MethodGet, "/health", s.handleHealth)

	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// handle registers a handler with method enforcement, request logging, and
// per-route metrics.
func (s *Server) handle(mux *http.ServeMux, method, route string, h http.HandlerFunc) {
	wrapped := s.metrics.instrument(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}
		start := time.Now()
		reqID := uuid.New().String()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.logger.Info("http_request",
			"request_id", reqID,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
	mux.HandleFunc(route, wrapped)
}
