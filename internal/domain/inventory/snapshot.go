package inventory

import "sort"

// Snapshot is the ordered in-memory copy of the item collection. Order
// follows the order received from the fetch. Every mutation produces a new
// slice (replace-by-filter or replace-by-map) so concurrent readers always
// observe a consistent collection.
type Snapshot []Item

// Find returns the item with the given name.
func (s Snapshot) Find(name string) (Item, bool) {
	for _, it := range s {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// Clone returns a copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// WithReplaced returns a new snapshot with the item matching it.Name
// replaced. When no item matches, the snapshot is returned unchanged.
func (s Snapshot) WithReplaced(it Item) (Snapshot, bool) {
	replaced := false
	out := make(Snapshot, len(s))
	for i, cur := range s {
		if cur.Name == it.Name {
			out[i] = it
			replaced = true
			continue
		}
		out[i] = cur
	}
	if !replaced {
		return s, false
	}
	return out, true
}

// Without returns a new snapshot with every item matching name removed,
// and the number of removed items. Matching is by name, not position.
func (s Snapshot) Without(name string) (Snapshot, int) {
	out := make(Snapshot, 0, len(s))
	removed := 0
	for _, it := range s {
		if it.Name == name {
			removed++
			continue
		}
		out = append(out, it)
	}
	if removed == 0 {
		return s, 0
	}
	return out, removed
}

// HiddenSet tracks rows that are visually suppressed. Hidden is independent
// of deletion: a hidden name is not necessarily absent from the snapshot.
type HiddenSet map[string]struct{}

// Has reports whether name is hidden.
func (h HiddenSet) Has(name string) bool {
	_, ok := h[name]
	return ok
}

// With returns a copy of the set containing name. Idempotent.
func (h HiddenSet) With(name string) HiddenSet {
	out := make(HiddenSet, len(h)+1)
	for k := range h {
		out[k] = struct{}{}
	}
	out[name] = struct{}{}
	return out
}

// Clone returns a copy of the set.
func (h HiddenSet) Clone() HiddenSet {
	out := make(HiddenSet, len(h))
	for k := range h {
		out[k] = struct{}{}
	}
	return out
}

// Names returns the hidden names in lexical order.
func (h HiddenSet) Names() []string {
	out := make([]string, 0, len(h))
	for k := range h {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
