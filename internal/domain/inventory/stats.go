package inventory

import (
	"github.com/shopspring/decimal"

	"stockdash/internal/core/types"
)

// Stats are the aggregate counters derived from a snapshot. They are
// recomputed from scratch on every read - cheap, and caching would only buy
// an invalidation problem.
type Stats struct {
	// TotalProducts is the item count, hidden rows included.
	TotalProducts int `json:"totalProducts"`

	// TotalStoreValue is the sum of item values, 2 decimal places.
	TotalStoreValue string `json:"totalStoreValue"`

	// TotalOutOfStock counts items whose quantity is exactly 0.
	TotalOutOfStock int `json:"totalOutOfStock"`

	// CategoryCount is the number of distinct categories
	// (case-sensitive, no trimming).
	CategoryCount int `json:"categoryCount"`
}

// Calculate derives Stats from a snapshot. Pure.
func Calculate(items Snapshot) Stats {
	total := decimal.Zero
	outOfStock := 0
	categories := make(map[string]struct{})

	for _, it := range items {
		total = total.Add(it.Value)
		if it.Quantity.IsZero() {
			outOfStock++
		}
		categories[it.Category] = struct{}{}
	}

	return Stats{
		TotalProducts:   len(items),
		TotalStoreValue: types.FormatAmount(total),
		TotalOutOfStock: outOfStock,
		CategoryCount:   len(categories),
	}
}
