package server

import (
	"context"
	"log/slog"

	"github.com/mito-shogi/wars-kif-service/internal/config"
	"github.com/mito-shogi/wars-kif-service/internal/store"
)

var redisConnect = func(ctx context.Context, rawURL string) (store.Store, func() error, error) {
	rs, err := store.NewRedisStore(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}
	return rs, rs.Close, nil
}

// buildStore picks Redis when REDIS_URL is set and falls back to process
// memory when it is unset or unreachable.
func buildStore(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (store.Store, func() error) {
	if cfg.RedisURL == "" {
		return store.NewMemoryStore(), nil
	}
	rs, closeFn, err := redisConnect(ctx, cfg.RedisURL)
	if err != nil {
		if logger != nil {
			logger.Warn("redis unavailable, using in-memory cache", "err", err)
		}
		return store.NewMemoryStore(), nil
	}
	if logger != nil {
		logger.Info("redis cache connected")
	}
	return rs, closeFn
}
