package controllers

import (
	"net/http"
	"time"

	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/sse"
	"github.com/thanhvudev/furnimart/pkg/ws"
)

// AdminDashboardController serves the back-office landing page: a one-shot
// stats endpoint, a live SSE stream of the same figures, and the websocket
// feed that pushes order events to open admin sessions.
type AdminDashboardController struct {
	dashboard *services.DashboardService
	hub       *ws.Hub
}

// NewAdminDashboardController wires the dashboard endpoints.
func NewAdminDashboardController(dashboard *services.DashboardService, hub *ws.Hub) *AdminDashboardController {
	return &AdminDashboardController{dashboard: dashboard, hub: hub}
}

// Stats returns the current summary counts.
func (dc *AdminDashboardController) Stats(c *ctx.Context) {
	stats, err := dc.dashboard.Stats()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(stats)
}

// Stream pushes the summary over SSE every few seconds until the client
// disconnects.
func (dc *AdminDashboardController) Stream(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	send := func() bool {
		stats, err := dc.dashboard.Stats()
		if err != nil {
			return !stream.IsClosed()
		}
		return stream.Send("stats", stats) == nil
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}

// Events upgrades to the websocket order feed.
func (dc *AdminDashboardController) Events(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, dc.hub)
}
