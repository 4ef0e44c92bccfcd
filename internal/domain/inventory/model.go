// Package inventory holds the in-memory inventory snapshot, the reconciler
// that applies local mutations (edit, delete, hide) on top of it, and the
// derived statistics computed from it.
package inventory

import (
	"stockdash/internal/core/types"
)

// Item is a single inventory row. Name is the mutation key - the feed
// carries no surrogate ID, so Name must be unique within the snapshot
// (enforced at ingestion, first occurrence wins).
type Item struct {
	// Name uniquely identifies the item within the collection.
	Name string `json:"name"`

	// Category is free-form, used only for statistics grouping.
	Category string `json:"category"`

	// Price is the unit price.
	Price types.Money `json:"price"`

	// Quantity is the stock count. Null/absent in the feed normalizes to 0.
	Quantity types.Quantity `json:"quantity"`

	// Value is semantically price * quantity, but it is NOT kept in sync
	// automatically - only an explicit saved edit recomputes it. The feed
	// is the other source of this field.
	Value types.Money `json:"value"`
}

// Dedupe enforces name uniqueness over a fetched item sequence.
// The first occurrence of a name wins; later duplicates are dropped and
// their names returned so the caller can log them.
func Dedupe(items []Item) ([]Item, []string) {
	seen := make(map[string]struct{}, len(items))
	unique := make([]Item, 0, len(items))
	var dropped []string
	for _, it := range items {
		if _, ok := seen[it.Name]; ok {
			dropped = append(dropped, it.Name)
			continue
		}
		seen[it.Name] = struct{}{}
		unique = append(unique, it)
	}
	return unique, dropped
}
