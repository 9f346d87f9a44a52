package providers

import (
	"context"
	"log/slog"
	"time"
)

// rateLimitedProvider wraps a Provider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     Provider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a Provider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next Provider, interval time.Duration, logger *slog.Logger) Provider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) Fetch(ctx context.Context, req Request) (RawPayload, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return RawPayload{}, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled")
		return RawPayload{}, ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", "kind", string(req.Kind))
	return p.next.Fetch(ctx, req)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
