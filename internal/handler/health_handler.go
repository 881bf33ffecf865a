package handler

import (
	"net/http"
	"time"
)

// HealthResponse reports process liveness and store connectivity.
type HealthResponse struct {
	Status   string  `json:"status"`
	Uptime   float64 `json:"uptime"`
	Database string  `json:"database"`
}

// ConnectionState reports whether the store is reachable.
type ConnectionState interface {
	Connected() bool
}

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	state   ConnectionState
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a health handler whose uptime counts from now.
func NewHealthHandler(state ConnectionState) *HealthHandler {
	return &HealthHandler{state: state, started: time.Now(), now: time.Now}
}

// ServeHTTP always answers 200; store loss is reported in the body.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	db := "disconnected"
	if h.state.Connected() {
		db = "connected"
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Uptime:   h.now().Sub(h.started).Seconds(),
		Database: db,
	})
}
