package server

import (
	"log/slog"

	"github.com/mito-shogi/wars-kif-service/internal/config"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the wrapped provider and a func that releases the limiter.
// Retries sit outside the limiter so every attempt waits its turn.
func (f providerFactory) build(cfg config.Config) (providers.Provider, func()) {
	base := selectProvider(cfg, f.logger)
	limited := providers.NewRateLimitedProvider(base, cfg.MinInterval, f.logger)
	release := func() {}
	if c, ok := limited.(interface{ Close() }); ok {
		release = c.Close
	}
	name := normalizeProviderName(cfg.Provider, base)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.Retries, cfg.RetryBackoff), release
}
