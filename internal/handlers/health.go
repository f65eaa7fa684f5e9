package handlers

import (
	"context"
	"net/http"
	"time"

	"nutrisnap/internal/db"
	applog "nutrisnap/internal/log"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health is a readiness handler for load balancer and orchestrator checks. It fails
// when the configured database cannot be reached.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:   "ok",
		Database: databaseStatus(r.Context()),
		Time:     now().UTC(),
	}

	status := http.StatusOK
	if resp.Database == "unreachable" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
	applog.Debug(r.Context(), "health check responded", "status", resp.Status)
}

func databaseStatus(ctx context.Context) string {
	if database == nil {
		return "disabled"
	}
	if err := db.Ping(ctx, database, healthPingTimeout); err != nil {
		applog.Error(ctx, "database ping failed", "error", err)
		return "unreachable"
	}
	return "ok"
}
