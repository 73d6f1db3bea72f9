package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/mrollo/retailgen/internal/queue"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports liveness of the storage sink and the run queue.
type HealthHandler struct {
	db          *sql.DB
	queueClient queue.Client
	logger      *slog.Logger
}

func NewHealthHandler(db *sql.DB, queueClient queue.Client, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		queueClient: queueClient,
		logger:      logger,
	}
}

// HealthResponse lists each dependency with its own status.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health. Any failing dependency turns the overall
// status unhealthy and the response into a 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("database health check failed", slog.String("error", err.Error()))
		resp.Status = "unhealthy"
		resp.Services["database"] = "unhealthy"
	} else {
		resp.Services["database"] = "healthy"
	}

	if err := h.queueClient.Health(ctx); err != nil {
		h.logger.Error("queue health check failed", slog.String("error", err.Error()))
		resp.Status = "unhealthy"
		resp.Services["queue"] = "unhealthy"
	} else {
		resp.Services["queue"] = "healthy"
	}

	if resp.Status != "healthy" {
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	respondSuccess(w, resp)
}
