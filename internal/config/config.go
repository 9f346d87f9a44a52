package config

import (
	"errors"
	"io/fs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port          string
	Provider      string
	FetchInterval Duration
	MinInterval   Duration
	Retries       int
	RetryBackoff  Duration
	Wars          WarsConfig
	Cache         CacheConfig
	Archive       ArchiveConfig
	Log           LogConfig
	Metrics       MetricsConfig
	// AdminToken guards the refresh endpoint; empty leaves it unmounted.
	AdminToken string
}

// LogConfig selects the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:          envOrDefault(envPort, defaultPort),
		Provider:      envOrDefault(envProvider, defaultProvider),
		FetchInterval: durationEnvOrDefault(envFetchInterval, defaultFetchInterval),
		MinInterval:   durationEnvOrDefault(envFetchLimit, defaultFetchLimit),
		Retries:       intEnvOrDefault(envRetries, defaultRetries),
		RetryBackoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		Wars:          loadWars(),
		Cache:         loadCache(),
		Archive:       loadArchive(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics:    loadMetrics(),
		AdminToken: envOrDefault(envAdminToken, ""),
	}
}

// LoadDotEnv merges .env files into the process environment. Variables that
// are already set win, and missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Validate checks the values Load cannot repair with a default.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Provider, validation.Required, validation.In(ProviderWars, ProviderFixture)),
		validation.Field(&c.Log),
		validation.Field(&c.Metrics),
	); err != nil {
		return err
	}
	if c.Provider == ProviderWars {
		return c.Wars.Validate()
	}
	return nil
}

// Validate checks the logger settings.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Format, validation.In("text", "json")),
	)
}
