package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockdash/internal/infrastructure/upstream"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	*BaseHandler
	health  *upstream.Health
	started time.Time
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(health *upstream.Health, version string) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(),
		health:      health,
		started:     time.Now(),
		version:     version,
	}
}

// Live reports process liveness.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness: the initial fetch must have concluded, success
// or failure - a failed fetch still leaves the dashboard serving its
// (empty) state with a visible error, which is the intended degraded mode.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.health.Concluded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "initial fetch in progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Info reports service metadata and the last fetch outcome.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{
		"version":    h.version,
		"uptime_sec": int(time.Since(h.started).Seconds()),
	}
	if err := h.health.LastError(); err != nil {
		info["last_fetch_error"] = err.Error()
	}
	if t := h.health.LastSuccess(); !t.IsZero() {
		info["last_fetch_success"] = t.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, info)
}
