package upstream

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/domain/inventory"
)

func TestRefreshOnce_AppliesSnapshotAndHealth(t *testing.T) {
	srv, _ := sequenceServer(t, http.StatusOK)
	c, _ := newTestClient(srv, 0)

	inv := inventory.NewService()
	health := &Health{}
	r := NewRefresher(c, inv, health, 0)

	require.False(t, health.Concluded())

	require.NoError(t, r.RefreshOnce(context.Background()))

	snap, _ := inv.View()
	assert.Len(t, snap, 2)
	assert.True(t, health.Concluded())
	assert.NoError(t, health.LastError())
	assert.False(t, health.LastSuccess().IsZero())
}

func TestRefreshOnce_RecordsFailure(t *testing.T) {
	srv, _ := sequenceServer(t, http.StatusInternalServerError)
	c, _ := newTestClient(srv, 0)

	inv := inventory.NewService()
	health := &Health{}
	r := NewRefresher(c, inv, health, 0)

	require.Error(t, r.RefreshOnce(context.Background()))

	assert.True(t, health.Concluded())
	assert.Error(t, health.LastError())

	snap, _ := inv.View()
	assert.Empty(t, snap)
}
