package upstream

import (
	"context"
	"sync"
	"time"

	"stockdash/internal/domain/inventory"
	"stockdash/pkg/logger"
)

// Health tracks the outcome of the most recent fetch cycle. The readiness
// endpoint and the dashboard status both read it.
type Health struct {
	mu          sync.RWMutex
	concluded   bool
	lastErr     error
	lastSuccess time.Time
}

// MarkSuccess records a successful fetch.
func (h *Health) MarkSuccess() {
	h.mu.Lock()
	h.concluded = true
	h.lastErr = nil
	h.lastSuccess = time.Now()
	h.mu.Unlock()
}

// MarkFailure records a failed fetch.
func (h *Health) MarkFailure(err error) {
	h.mu.Lock()
	h.concluded = true
	h.lastErr = err
	h.mu.Unlock()
}

// Concluded reports whether the initial fetch has finished, success or not.
func (h *Health) Concluded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.concluded
}

// LastError returns the error of the most recent fetch, nil after success.
func (h *Health) LastError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}

// LastSuccess returns the time of the most recent successful fetch.
func (h *Health) LastSuccess() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastSuccess
}

// Refresher periodically re-fetches the collection and applies it as a full
// snapshot replacement. The reconciler's single-writer lock makes the
// replacement atomic with respect to concurrent renders.
type Refresher struct {
	client   *Client
	inv      *inventory.Service
	health   *Health
	interval time.Duration

	// cycleTimeout is the wall-clock deadline across one whole retry
	// sequence, so a slow upstream cannot stall the loop past its interval.
	cycleTimeout time.Duration
}

// NewRefresher creates a Refresher. interval <= 0 disables periodic refresh.
func NewRefresher(client *Client, inv *inventory.Service, health *Health, interval time.Duration) *Refresher {
	cycle := interval
	if cycle <= 0 || cycle > 5*time.Minute {
		cycle = 5 * time.Minute
	}
	return &Refresher{
		client:       client,
		inv:          inv,
		health:       health,
		interval:     interval,
		cycleTimeout: cycle,
	}
}

// RefreshOnce runs one fetch cycle with the configured deadline and applies
// the result. Used for the initial load and the manual refresh endpoint.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.cycleTimeout)
	defer cancel()

	items, err := r.client.FetchWithRetry(ctx)
	if err != nil {
		r.health.MarkFailure(err)
		return err
	}

	r.inv.Replace(ctx, items)
	r.health.MarkSuccess()
	return nil
}

// Run refreshes on the configured interval until ctx is cancelled.
// No-op when periodic refresh is disabled.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	log := logger.FromContext(ctx).WithComponent("refresher")
	log.Infow("periodic refresh enabled", "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("refresher stopped")
			return
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				log.Warnw("periodic refresh failed", "error", err)
			}
		}
	}
}
