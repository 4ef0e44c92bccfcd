// Package dashboard maps reconciled inventory state to the renderable view
// model. This is the only place where amounts are serialized back into the
// currency-prefixed string form the feed uses.
package dashboard

import (
	"stockdash/internal/core/role"
	"stockdash/internal/core/types"
	"stockdash/internal/domain/inventory"
)

// CurrencyPrefix is applied to amounts at the presentation boundary.
const CurrencyPrefix = "$"

// Row is one renderable inventory line. Hidden rows stay in the list - they
// are visually suppressed and non-interactive, not filtered out.
type Row struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
	Value    string `json:"value"`

	Hidden bool `json:"hidden"`

	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
	CanHide   bool `json:"canHide"`
}

// View is the complete dashboard view model.
type View struct {
	Rows  []Row           `json:"rows"`
	Stats inventory.Stats `json:"stats"`
	Role  role.Role       `json:"role"`

	// Editing carries the open draft for the current caller, if any.
	Editing *inventory.EditDraft `json:"editing,omitempty"`
}

// Build assembles the view model. Pure: it reads the snapshot, hidden set,
// stats and role and produces rows in snapshot order, each annotated with
// whether mutation controls are enabled for the role.
func Build(snap inventory.Snapshot, hidden inventory.HiddenSet, stats inventory.Stats, r role.Role) View {
	mutable := role.CanMutate(r)

	rows := make([]Row, 0, len(snap))
	for _, it := range snap {
		isHidden := hidden.Has(it.Name)
		interactive := mutable && !isHidden
		rows = append(rows, Row{
			Name:      it.Name,
			Category:  it.Category,
			Price:     FormatAmount(it.Price),
			Quantity:  it.Quantity.Int64(),
			Value:     FormatAmount(it.Value),
			Hidden:    isHidden,
			CanEdit:   interactive,
			CanDelete: interactive,
			CanHide:   interactive,
		})
	}

	return View{
		Rows:  rows,
		Stats: stats,
		Role:  r,
	}
}

// FormatAmount renders Money in the feed's currency-prefixed form.
func FormatAmount(m types.Money) string {
	return CurrencyPrefix + types.FormatAmount(m)
}
