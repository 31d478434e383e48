// Package handlers provides the UI bridge endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/agenda-app/client/internal/api/middleware"
	"github.com/agenda-app/client/internal/pipeline"
	"github.com/agenda-app/client/internal/websocket"
)

// Pinger reports whether the local database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
	Clients     int    `json:"clients"`
	Busy        bool   `json:"busy"`
}

// HealthCheck reports the bridge status. A missing database degrades it.
func HealthCheck(db Pinger, hub *websocket.Hub, busy *pipeline.InFlight) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:      "healthy",
			DBConnected: db != nil && db.PingContext(r.Context()) == nil,
			Clients:     hub.ClientCount(),
			Busy:        busy.Busy(),
		}

		status := http.StatusOK
		if !resp.DBConnected {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		middleware.WriteJSON(w, status, resp)
	}
}
