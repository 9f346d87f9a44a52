package config

import "time"

const (
	envPort          = "PORT"
	envProvider      = "PROVIDER"
	envFetchInterval = "FETCH_INTERVAL"
	envFetchLimit    = "FETCH_MIN_INTERVAL"
	envRetries       = "FETCH_RETRIES"
	envRetryBackoff  = "FETCH_RETRY_BACKOFF"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envRedisURL      = "REDIS_URL"
	envCacheTTL      = "CACHE_TTL"
	envAdminToken    = "ADMIN_TOKEN"

	envArchiveDir       = "ARCHIVE_DIR"
	envArchiveRetention = "ARCHIVE_RETENTION_DAYS"
	envArchiveInterval  = "ARCHIVE_INTERVAL"

	envWarsBaseURL     = "WARS_BASE_URL"
	envWarsCookie      = "WARS_COOKIE"
	envWarsUserID      = "WARS_USER_ID"
	envWarsSecret      = "WARS_SECRET"
	envWarsFriendToken = "WARS_FRIEND_TOKEN"

	ProviderWars    = "wars"
	ProviderFixture = "fixture"

	defaultPort     = "4000"
	defaultProvider = ProviderFixture
	// History refresh cadence for WARS_USER_ID; zero keeps the refresher off.
	defaultFetchInterval = 10 * Duration(time.Minute)
	// Minimum spacing between upstream calls.
	defaultFetchLimit   = 2 * Duration(time.Second)
	defaultRetries      = 3
	defaultRetryBackoff = 500 * Duration(time.Millisecond)
	defaultMetricsPort  = "9090"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultCacheTTL     = 24 * Duration(time.Hour)
	defaultWarsBaseURL  = "https://shogiwars.heroz.jp/"
	defaultServiceName  = "wars-kif-service"

	defaultArchiveRetention = 30
	defaultArchiveInterval  = Duration(time.Hour)
)
