// Package handler provides HTTP handlers for all API endpoints.
// Tool calls go through the tools registry; handlers add no logic of their own.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-scout/internal/api/respond"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/tools"
)

// maxToolArgsBytes bounds a tool call request body.
const maxToolArgsBytes = 64 << 10

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  *gamelog.Store
	tools  *tools.Registry
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(store *gamelog.Store, registry *tools.Registry, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, tools: registry, cfg: cfg, logger: logger}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the store backend in use.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Scout API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"store":   h.store.Backend,
		"tools":   len(h.tools.Definitions()),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckStore verifies the game log store is reachable.
// @Summary Store health check
// @Description Verifies the configured game log store (Postgres, SQLite or CSV) is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/store [get]
func (h *Handler) HealthCheckStore(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(r.Context()); err != nil {
		h.logger.Error("Store health check failed", "backend", h.store.Backend, "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"store":     h.store.Backend,
			"error":     "Store connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"store":     h.store.Backend,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
