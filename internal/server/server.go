// Package server exposes the read-only status endpoints next to the bot:
// a liveness check and aggregate stats for dashboards.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/faraaway90/telegram/internal/engine"
)

type Server struct {
	httpServer *http.Server
}

// New builds the status server on the given port.
func New(port int, eng *engine.Engine) *Server {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)

	r.Get("/health", handleHealth(eng))
	r.Get("/api/stats", handleStats(eng))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type healthResponse struct {
	Status             string `json:"status"`
	Users              int    `json:"users"`
	ActiveTasks        int    `json:"active_tasks"`
	PendingWithdrawals int    `json:"pending_withdrawals"`
}

func handleHealth(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := eng.AggregateStats()
		writeJSON(w, http.StatusOK, healthResponse{
			Status:             "ok",
			Users:              stats.TotalAccounts,
			ActiveTasks:        stats.ActiveTimers,
			PendingWithdrawals: stats.PendingWithdrawals,
		})
	}
}

func handleStats(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, eng.AggregateStats())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
