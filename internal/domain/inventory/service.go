package inventory

import (
	"context"
	"sync"

	"stockdash/internal/core/apperror"
	"stockdash/pkg/logger"
)

// Service is the inventory reconciler. It owns the snapshot, the hidden set
// and the active edit draft, and applies local mutations on top of the last
// fetched collection. All state is guarded by a single lock: mutations are
// single-writer, and reads hand out copies so renders never observe a torn
// collection.
//
// The service does NOT enforce role authorization - that check belongs to
// the call site (HTTP layer). Keeping it out of here lets both layers be
// tested independently.
type Service struct {
	mu       sync.RWMutex
	snapshot Snapshot
	hidden   HiddenSet
	draft    *EditDraft
}

// NewService creates an empty reconciler.
func NewService() *Service {
	return &Service{hidden: make(HiddenSet)}
}

// Replace applies a freshly fetched collection as the new snapshot (full
// refresh, not a merge). Duplicate names are dropped, first occurrence wins.
// The hidden set survives a refresh: hidden means visually suppressed, and a
// re-fetch does not express the intent to unhide anything.
func (s *Service) Replace(ctx context.Context, items []Item) {
	unique, dropped := Dedupe(items)
	if len(dropped) > 0 {
		logger.Warn(ctx, "dropped duplicate item names from fetched collection",
			"dropped", dropped,
		)
	}

	s.mu.Lock()
	s.snapshot = Snapshot(unique)
	s.mu.Unlock()

	logger.Info(ctx, "snapshot replaced", "items", len(unique))
}

// View returns consistent copies of the snapshot and the hidden set.
func (s *Service) View() (Snapshot, HiddenSet) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), s.hidden.Clone()
}

// Stats computes the derived statistics for the current snapshot.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Calculate(s.snapshot)
}

// BeginEdit opens a draft for the named item. An already open draft is
// replaced. Returns NOT_FOUND when the name is absent from the snapshot.
func (s *Service) BeginEdit(ctx context.Context, name string) (EditDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.snapshot.Find(name)
	if !ok {
		return EditDraft{}, apperror.NewNotFound("item", name)
	}

	d := NewDraft(it)
	s.draft = &d
	logger.Debug(ctx, "edit started", "item", name)
	return d, nil
}

// Draft returns a copy of the active draft, if any.
func (s *Service) Draft() (EditDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return EditDraft{}, false
	}
	return *s.draft, true
}

// UpdateDraft updates one field of the active draft. No numeric validation
// happens here; parsing is deferred to SaveEdit.
func (s *Service) UpdateDraft(ctx context.Context, field, value string) (EditDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return EditDraft{}, apperror.NewConflict("no edit in progress")
	}

	next, err := s.draft.WithField(field, value)
	if err != nil {
		return EditDraft{}, err
	}
	s.draft = &next
	return next, nil
}

// SaveEdit commits the active draft into the snapshot, recomputing the item
// value. When the drafted item vanished from the snapshot in the meantime,
// the snapshot is left unchanged. The draft is closed either way.
func (s *Service) SaveEdit(ctx context.Context) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return Item{}, apperror.NewConflict("no edit in progress")
	}

	it := s.draft.Commit()
	s.draft = nil

	next, replaced := s.snapshot.WithReplaced(it)
	if !replaced {
		logger.Warn(ctx, "edit target vanished, save is a no-op", "item", it.Name)
		return Item{}, nil
	}
	s.snapshot = next

	logger.Info(ctx, "edit saved", "item", it.Name, "value", it.Value.StringFixed(2))
	return it, nil
}

// CancelEdit discards the active draft without touching the snapshot.
// Safe to call when no draft is open.
func (s *Service) CancelEdit() {
	s.mu.Lock()
	s.draft = nil
	s.mu.Unlock()
}

// DiscardDraftIfAny closes any open draft and reports whether one was open.
// Wired to role-store changes: losing admin rights must drop the draft.
func (s *Service) DiscardDraftIfAny(ctx context.Context) bool {
	s.mu.Lock()
	had := s.draft != nil
	s.draft = nil
	s.mu.Unlock()

	if had {
		logger.Info(ctx, "open edit draft discarded")
	}
	return had
}

// Delete removes every item matching name from the snapshot and returns the
// number of removed items. Deletion does not touch the hidden set: delete
// and hide are independent primitives, composed by the caller when the
// legacy combined behavior is wanted.
func (s *Service) Delete(ctx context.Context, name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := s.snapshot.Without(name)
	if removed == 0 {
		return 0
	}
	s.snapshot = next

	logger.Info(ctx, "item deleted", "item", name, "removed", removed)
	return removed
}

// Hide marks name as visually suppressed. Idempotent; does not touch the
// snapshot.
func (s *Service) Hide(ctx context.Context, name string) {
	s.mu.Lock()
	s.hidden = s.hidden.With(name)
	s.mu.Unlock()

	logger.Debug(ctx, "item hidden", "item", name)
}
