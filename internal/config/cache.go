package config

import "time"

// CacheConfig selects where converted records are kept. An empty RedisURL
// keeps them in process memory.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		RedisURL: envOrDefault(envRedisURL, ""),
		TTL:      durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}
