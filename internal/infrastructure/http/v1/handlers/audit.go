package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"

	"stockdash/internal/core/apperror"
	"stockdash/internal/domain/audit"
	"stockdash/internal/domain/inventory"
)

// AuditHandler serves the mutation audit trail and the snapshot export.
type AuditHandler struct {
	*BaseHandler
	trail *audit.Trail
	inv   *inventory.Service
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(trail *audit.Trail, inv *inventory.Service) *AuditHandler {
	return &AuditHandler{
		BaseHandler: NewBaseHandler(),
		trail:       trail,
		inv:         inv,
	}
}

// List returns audit entries, newest first.
// GET /api/v1/audit
func (h *AuditHandler) List(c *gin.Context) {
	h.OK(c, gin.H{"entries": h.trail.List()})
}

// Export streams the current snapshot as zstd-compressed JSON.
// GET /api/v1/export
func (h *AuditHandler) Export(c *gin.Context) {
	snap, _ := h.inv.View()

	c.Header("Content-Type", "application/json")
	c.Header("Content-Encoding", "zstd")
	c.Header("Content-Disposition", `attachment; filename="inventory.json.zst"`)
	c.Status(http.StatusOK)

	enc, err := zstd.NewWriter(c.Writer)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		_ = enc.Close()
		h.Error(c, apperror.NewInternal(err))
		return
	}
	if err := enc.Close(); err != nil {
		h.Error(c, apperror.NewInternal(err))
	}
}
