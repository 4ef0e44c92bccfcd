package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/core/role"
	"stockdash/internal/core/types"
	"stockdash/internal/domain/inventory"
)

func testSnapshot() inventory.Snapshot {
	return inventory.Snapshot{
		{
			Name:     "Widget",
			Category: "tools",
			Price:    types.MustMoney("2.00"),
			Quantity: types.NewQuantity(5),
			Value:    types.MustMoney("10.00"),
		},
		{
			Name:     "Gadget",
			Category: "tools",
			Price:    types.MustMoney("5.50"),
			Quantity: types.NewQuantity(0),
			Value:    types.MustMoney("5.50"),
		},
	}
}

func TestBuild_AdminControlsEnabled(t *testing.T) {
	snap := testSnapshot()
	view := Build(snap, inventory.HiddenSet{}, inventory.Calculate(snap), role.Admin)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, role.Admin, view.Role)
	for _, row := range view.Rows {
		assert.True(t, row.CanEdit)
		assert.True(t, row.CanDelete)
		assert.True(t, row.CanHide)
	}
}

func TestBuild_UserControlsDisabled(t *testing.T) {
	snap := testSnapshot()
	view := Build(snap, inventory.HiddenSet{}, inventory.Calculate(snap), role.User)

	for _, row := range view.Rows {
		assert.False(t, row.CanEdit)
		assert.False(t, row.CanDelete)
		assert.False(t, row.CanHide)
	}
}

func TestBuild_HiddenRowsStayInList(t *testing.T) {
	snap := testSnapshot()
	hidden := inventory.HiddenSet{}.With("Gadget")

	view := Build(snap, hidden, inventory.Calculate(snap), role.Admin)

	// hidden rows are suppressed and non-interactive, not filtered out
	require.Len(t, view.Rows, 2)
	assert.False(t, view.Rows[0].Hidden)
	assert.True(t, view.Rows[1].Hidden)
	assert.False(t, view.Rows[1].CanEdit)
	assert.False(t, view.Rows[1].CanDelete)
	assert.False(t, view.Rows[1].CanHide)
}

func TestBuild_AmountsCurrencyPrefixed(t *testing.T) {
	snap := testSnapshot()
	view := Build(snap, inventory.HiddenSet{}, inventory.Calculate(snap), role.User)

	assert.Equal(t, "$2.00", view.Rows[0].Price)
	assert.Equal(t, "$10.00", view.Rows[0].Value)
	assert.Equal(t, "15.50", view.Stats.TotalStoreValue)
}

func TestBuild_PreservesSnapshotOrder(t *testing.T) {
	snap := testSnapshot()
	view := Build(snap, inventory.HiddenSet{}, inventory.Calculate(snap), role.User)

	assert.Equal(t, "Widget", view.Rows[0].Name)
	assert.Equal(t, "Gadget", view.Rows[1].Name)
}
