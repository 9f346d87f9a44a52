package config

import "time"

// ArchiveConfig controls the on-disk CSA archive. An empty Dir disables it.
type ArchiveConfig struct {
	Dir           string
	RetentionDays int
	Interval      time.Duration
}

func loadArchive() ArchiveConfig {
	return ArchiveConfig{
		Dir:           envOrDefault(envArchiveDir, ""),
		RetentionDays: intEnvOrDefault(envArchiveRetention, defaultArchiveRetention),
		Interval:      durationEnvOrDefault(envArchiveInterval, defaultArchiveInterval),
	}
}
