// Package audit keeps an in-memory trail of dashboard mutations.
// Entries live in a bounded ring; large change payloads are zstd-compressed.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	appctx "stockdash/internal/core/context"
	"stockdash/internal/core/role"
	"stockdash/pkg/logger"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionEditBegin  Action = "edit_begin"
	ActionEditSave   Action = "edit_save"
	ActionEditCancel Action = "edit_cancel"
	ActionDelete     Action = "delete"
	ActionHide       Action = "hide"
	ActionRefresh    Action = "refresh"
	ActionRoleToggle Action = "role_toggle"
)

// CompressionAlgo specifies the compression algorithm used for a payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Entry is a single audit record.
type Entry struct {
	ID        string          `json:"id"`
	Action    Action          `json:"action"`
	ItemName  string          `json:"itemName,omitempty"`
	Role      role.Role       `json:"role"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`

	compressed []byte
	algo       CompressionAlgo
}

// Trail is a bounded in-memory audit log. Oldest entries are evicted once
// the capacity is reached.
type Trail struct {
	mu      sync.Mutex
	entries []Entry
	max     int

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	// payloads over this size are stored zstd-compressed
	compressThreshold int
}

// NewTrail creates a Trail holding at most max entries.
func NewTrail(max int) (*Trail, error) {
	if max <= 0 {
		max = 1000
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Trail{
		max:               max,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 4 * 1024,
	}, nil
}

// Record appends an entry. changes may be nil; any marshalable value is
// accepted. Recording never fails the calling operation - marshal problems
// are logged and the entry stored without a payload.
func (t *Trail) Record(ctx context.Context, action Action, itemName string, changes any) {
	entry := Entry{
		ID:        uuid.New().String(),
		Action:    action,
		ItemName:  itemName,
		Role:      appctx.GetRole(ctx),
		CreatedAt: time.Now().UTC(),
		algo:      CompressionNone,
	}

	if changes != nil {
		payload, err := json.Marshal(changes)
		if err != nil {
			logger.Warn(ctx, "audit payload marshal failed", "action", action, "error", err)
		} else if len(payload) > t.compressThreshold {
			entry.compressed = t.encoder.EncodeAll(payload, nil)
			entry.algo = CompressionZstd
		} else {
			entry.Changes = payload
		}
	}

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
	t.mu.Unlock()
}

// List returns all entries, newest first, with compressed payloads inflated.
func (t *Trail) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, 0, len(t.entries))
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.algo == CompressionZstd && len(e.compressed) > 0 {
			if raw, err := t.decoder.DecodeAll(e.compressed, nil); err == nil {
				e.Changes = raw
			}
		}
		out = append(out, e)
	}
	return out
}

// Len returns the number of stored entries.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
