package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stockdash/internal/core/context"
	"stockdash/internal/core/role"
)

func TestTrail_RecordAndList(t *testing.T) {
	trail, err := NewTrail(10)
	require.NoError(t, err)

	ctx := appctx.WithRole(context.Background(), role.Admin)
	trail.Record(ctx, ActionDelete, "Widget", map[string]int{"removed": 1})
	trail.Record(ctx, ActionHide, "Gadget", nil)

	entries := trail.List()
	require.Len(t, entries, 2)

	// newest first
	assert.Equal(t, ActionHide, entries[0].Action)
	assert.Equal(t, ActionDelete, entries[1].Action)
	assert.Equal(t, role.Admin, entries[1].Role)
	assert.JSONEq(t, `{"removed":1}`, string(entries[1].Changes))
	assert.NotEmpty(t, entries[0].ID)
}

func TestTrail_Eviction(t *testing.T) {
	trail, err := NewTrail(2)
	require.NoError(t, err)

	ctx := context.Background()
	trail.Record(ctx, ActionHide, "a", nil)
	trail.Record(ctx, ActionHide, "b", nil)
	trail.Record(ctx, ActionHide, "c", nil)

	entries := trail.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].ItemName)
	assert.Equal(t, "b", entries[1].ItemName)
}

func TestTrail_CompressesLargePayloads(t *testing.T) {
	trail, err := NewTrail(10)
	require.NoError(t, err)

	big := map[string]string{"blob": strings.Repeat("x", 64*1024)}
	trail.Record(context.Background(), ActionEditSave, "Widget", big)

	entries := trail.List()
	require.Len(t, entries, 1)

	// payload round-trips through compression
	assert.Contains(t, string(entries[0].Changes), "blob")
}
