// Package handlers implements the HTTP API handlers.
package handlers

import (
	"github.com/gin-gonic/gin"

	"stockdash/internal/domain/audit"
	"stockdash/internal/domain/inventory"
	"stockdash/internal/infrastructure/http/v1/dto"
	"stockdash/internal/infrastructure/upstream"
)

// InventoryHandler exposes the reconciler's mutation operations. Every
// route registered for this handler sits behind middleware.RequireMutator,
// which is where the role gate is enforced.
type InventoryHandler struct {
	*BaseHandler
	inv       *inventory.Service
	trail     *audit.Trail
	refresher *upstream.Refresher
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inv *inventory.Service, trail *audit.Trail, refresher *upstream.Refresher) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(),
		inv:         inv,
		trail:       trail,
		refresher:   refresher,
	}
}

// BeginEdit opens an edit draft for the named item.
// POST /api/v1/items/:name/edit
func (h *InventoryHandler) BeginEdit(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	draft, err := h.inv.BeginEdit(ctx, name)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.trail.Record(ctx, audit.ActionEditBegin, name, nil)
	h.OK(c, draft)
}

// UpdateDraft updates one field of the active draft.
// PUT /api/v1/items/:name/edit
func (h *InventoryHandler) UpdateDraft(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := h.inv.UpdateDraft(ctx, req.Field, req.Value)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, draft)
}

// SaveEdit commits the active draft into the snapshot.
// POST /api/v1/items/:name/save
func (h *InventoryHandler) SaveEdit(c *gin.Context) {
	ctx := c.Request.Context()

	it, err := h.inv.SaveEdit(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.trail.Record(ctx, audit.ActionEditSave, it.Name, it)
	h.OK(c, it)
}

// CancelEdit discards the active draft.
// DELETE /api/v1/items/:name/edit
func (h *InventoryHandler) CancelEdit(c *gin.Context) {
	ctx := c.Request.Context()

	h.inv.CancelEdit()
	h.trail.Record(ctx, audit.ActionEditCancel, c.Param("name"), nil)
	h.NoContent(c)
}

// Delete removes the named item from the snapshot and hides the name.
// Delete and hide are independent reconciler primitives, composed here to
// preserve the legacy dashboard behavior.
// DELETE /api/v1/items/:name
func (h *InventoryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	removed := h.inv.Delete(ctx, name)
	h.inv.Hide(ctx, name)

	h.trail.Record(ctx, audit.ActionDelete, name, dto.DeleteResponse{Removed: removed, Hidden: true})
	h.OK(c, dto.DeleteResponse{Removed: removed, Hidden: true})
}

// Hide marks the named row as visually suppressed.
// POST /api/v1/items/:name/hide
func (h *InventoryHandler) Hide(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	h.inv.Hide(ctx, name)

	h.trail.Record(ctx, audit.ActionHide, name, nil)
	h.NoContent(c)
}

// Refresh re-fetches the collection with the full retry schedule and
// replaces the snapshot.
// POST /api/v1/refresh
func (h *InventoryHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.refresher.RefreshOnce(ctx); err != nil {
		h.Error(c, err)
		return
	}

	snap, _ := h.inv.View()
	h.trail.Record(ctx, audit.ActionRefresh, "", dto.RefreshResponse{Items: len(snap)})
	h.OK(c, dto.RefreshResponse{Items: len(snap)})
}
