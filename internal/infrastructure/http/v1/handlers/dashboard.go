package handlers

import (
	"github.com/gin-gonic/gin"

	appctx "stockdash/internal/core/context"
	"stockdash/internal/domain/dashboard"
	"stockdash/internal/domain/inventory"
)

// DashboardHandler serves the read-only rendering surface: the full view
// model and the derived statistics.
type DashboardHandler struct {
	*BaseHandler
	inv *inventory.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(inv *inventory.Service) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(),
		inv:         inv,
	}
}

// View returns the dashboard view model for the current role.
// GET /api/v1/dashboard
func (h *DashboardHandler) View(c *gin.Context) {
	ctx := c.Request.Context()
	r := appctx.GetRole(ctx)

	snap, hidden := h.inv.View()
	stats := inventory.Calculate(snap)

	view := dashboard.Build(snap, hidden, stats, r)
	if draft, ok := h.inv.Draft(); ok {
		view.Editing = &draft
	}

	h.OK(c, view)
}

// Stats returns the derived statistics only.
// GET /api/v1/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.OK(c, h.inv.Stats())
}
