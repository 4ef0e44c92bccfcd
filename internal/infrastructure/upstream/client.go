// Package upstream fetches the inventory collection from the remote feed.
// It owns transport concerns only: issuing the read, classifying failures,
// and the bounded exponential-backoff retry on rate limiting. Applying the
// result to shared state is the caller's job.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"stockdash/internal/core/apperror"
	"stockdash/internal/core/types"
	"stockdash/internal/domain/inventory"
	"stockdash/pkg/logger"
)

var tracer = otel.Tracer("stockdash/upstream")

// errRateLimited classifies an HTTP 429 answer. It is the only failure that
// triggers a retry.
var errRateLimited = errors.New("upstream rate limited")

// Config holds upstream client configuration.
type Config struct {
	// BaseURL is the inventory collection resource.
	BaseURL string

	// MaxRetries bounds retries after the first attempt (429 only).
	MaxRetries int

	// InitialDelay is the wait before the first retry; it doubles after
	// every rate-limited attempt.
	InitialDelay time.Duration

	// MaxDelay caps the doubling schedule so a long 429 streak cannot grow
	// the wait without bound.
	MaxDelay time.Duration

	// JitterFraction randomizes each wait by up to this fraction of the
	// delay, to avoid synchronized retry storms. 0 keeps the schedule
	// deterministic.
	JitterFraction float64

	// RequestTimeout bounds a single attempt.
	RequestTimeout time.Duration
}

// DefaultConfig returns the config matching the historical dashboard
// behavior: 3 retries starting at 1s.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		MaxRetries:     3,
		InitialDelay:   time.Second,
		MaxDelay:       30 * time.Second,
		JitterFraction: 0,
		RequestTimeout: 10 * time.Second,
	}
}

// Client reads the inventory collection over HTTP.
type Client struct {
	cfg  Config
	http *http.Client

	// sleep is the retry suspension, context-aware. Injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Client.
func New(cfg Config) *Client {
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.RequestTimeout},
		sleep: sleepCtx,
	}
}

// Fetch issues a single read of the collection, no retry.
func (c *Client) Fetch(ctx context.Context) ([]inventory.Item, error) {
	items, err := c.fetchOnce(ctx, 1)
	if err != nil {
		return nil, apperror.NewFetchFailed(err)
	}
	return items, nil
}

// FetchWithRetry reads the collection, retrying rate-limited answers with
// exponential backoff: wait delay, retry with one fewer attempt and twice
// the delay, capped at MaxDelay. Any other failure returns immediately as
// FETCH_FAILED. An exhausted retry budget returns RATE_LIMIT_EXHAUSTED
// after exactly MaxRetries+1 attempts. Cancelling ctx aborts the wait, so a
// torn-down caller never pays for a retry it no longer wants.
func (c *Client) FetchWithRetry(ctx context.Context) ([]inventory.Item, error) {
	delay := c.cfg.InitialDelay
	retries := c.cfg.MaxRetries
	attempt := 0

	for {
		attempt++
		items, err := c.fetchOnce(ctx, attempt)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, errRateLimited) {
			return nil, apperror.NewFetchFailed(err)
		}
		if retries <= 0 {
			return nil, apperror.NewRateLimitExhausted(attempt)
		}

		wait := c.withJitter(min(delay, c.cfg.MaxDelay))
		logger.Warn(ctx, "upstream rate limited, retrying",
			"delay", wait.String(),
			"retries_left", retries,
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, apperror.NewFetchFailed(err)
		}

		retries--
		delay *= 2
	}
}

// fetchOnce performs one GET against the collection resource.
func (c *Client) fetchOnce(ctx context.Context, attempt int) ([]inventory.Item, error) {
	ctx, span := tracer.Start(ctx, "upstream.fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("upstream.url", c.cfg.BaseURL),
		attribute.Int("upstream.attempt", attempt),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusTooManyRequests {
		span.SetStatus(codes.Error, "rate limited")
		return nil, errRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("unexpected upstream status %d", resp.StatusCode)
	}

	var wire []wireItem
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("decode inventory payload: %w", err)
	}

	items := make([]inventory.Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.toItem(ctx))
	}
	return items, nil
}

func (c *Client) withJitter(d time.Duration) time.Duration {
	if c.cfg.JitterFraction <= 0 {
		return d
	}
	spread := float64(d) * c.cfg.JitterFraction
	return d + time.Duration(rand.Float64()*spread)
}

// sleepCtx is a cooperative suspension that honors context cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// wireItem mirrors the feed's record shape: amounts are currency-prefixed
// strings, quantity may be a number, string, or null.
type wireItem struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Price    string         `json:"price"`
	Quantity types.Quantity `json:"quantity"`
	Value    string         `json:"value"`
}

// toItem normalizes a wire record: currency prefixes stripped, malformed
// amounts degraded to zero (the feed is not guaranteed well-formed and a bad
// record must not take the dashboard down).
func (w wireItem) toItem(ctx context.Context) inventory.Item {
	price, err := types.ParseAmount(w.Price)
	if err != nil {
		logger.Warn(ctx, "malformed price, defaulting to zero", "item", w.Name, "price", w.Price)
		price = types.Zero()
	}
	value, err := types.ParseAmount(w.Value)
	if err != nil {
		logger.Warn(ctx, "malformed value, defaulting to zero", "item", w.Name, "value", w.Value)
		value = types.Zero()
	}
	return inventory.Item{
		Name:     w.Name,
		Category: w.Category,
		Price:    price,
		Quantity: w.Quantity,
		Value:    value,
	}
}
