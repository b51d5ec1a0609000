// Package api provides the HTTP server for forgeflow.
// It exposes the task store and the "give me the next batch to run"
// scheduling surface to the surrounding pipeline.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forgeflow/forgeflow/internal/domain"
	"github.com/forgeflow/forgeflow/internal/scheduler"
)

// TaskStore is the persistence surface the API needs. Satisfied by
// *sqlite.DB.
type TaskStore interface {
	InsertTask(task domain.TaskRecord) error
	GetTask(id string) (*domain.TaskRecord, error)
	ListTasks(status domain.TaskStatus) ([]domain.TaskRecord, error)
	UpdateTaskStatus(id string, status domain.TaskStatus) error
	DeleteTask(id string) error
}

// Server is the forgeflow HTTP API server.
type Server struct {
	store          TaskStore
	schedConfig    scheduler.Config
	metricsEnabled bool
	version        string
	corsOrigin     string
}

// NewServer creates a new API server backed by the given store.
func NewServer(store TaskStore, schedConfig scheduler.Config) *Server {
	return &Server{store: store, schedConfig: schedConfig, version: "dev", corsOrigin: "*"}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetVersion sets the version reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// SetCORSOrigin overrides the Access-Control-Allow-Origin header value.
func (s *Server) SetCORSOrigin(origin string) {
	if origin != "" {
		s.corsOrigin = origin
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "forgeflow is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	// Task store
	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", s.handleCreateTask)
		r.Get("/", s.handleListTasks)
		r.Get("/{id}", s.handleGetTask)
		r.Patch("/{id}/status", s.handleUpdateStatus)
		r.Delete("/{id}", s.handleDeleteTask)
	})

	// Scheduling surface
	r.Route("/api/schedule", func(r chi.Router) {
		r.Post("/", s.handleComputeSchedule)
		r.Get("/next", s.handleNextBatch)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
