package handlers

import (
	"github.com/gin-gonic/gin"

	"stockdash/internal/core/role"
	"stockdash/internal/domain/audit"
	"stockdash/internal/infrastructure/http/v1/dto"
)

// RoleHandler exposes the role store: reading the current role and the
// toggle action. Toggling is deliberately ungated - it is the client-side
// role flag, not authentication.
type RoleHandler struct {
	*BaseHandler
	store *role.Store
	trail *audit.Trail
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(store *role.Store, trail *audit.Trail) *RoleHandler {
	return &RoleHandler{
		BaseHandler: NewBaseHandler(),
		store:       store,
		trail:       trail,
	}
}

// Current returns the current role.
// GET /api/v1/role
func (h *RoleHandler) Current(c *gin.Context) {
	h.OK(c, dto.RoleResponse{Role: string(h.store.Current())})
}

// Toggle flips admin <-> user. Store subscribers take care of discarding an
// open edit draft when admin rights are lost.
// POST /api/v1/role/toggle
func (h *RoleHandler) Toggle(c *gin.Context) {
	next := h.store.Toggle()

	h.trail.Record(c.Request.Context(), audit.ActionRoleToggle, "", dto.RoleResponse{Role: string(next)})
	h.OK(c, dto.RoleResponse{Role: string(next)})
}
