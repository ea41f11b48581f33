// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// PictureBaseURL is the public base URL of the picture store, used to
	// resolve profile and sub-event picture URLs at load time.
	// Defaults to "https://pictures.tripmatch.app".
	PictureBaseURL string

	// RefreshInterval is how often the feed worker drains the rebuild
	// queue. Defaults to 30s. Set REFRESH_INTERVAL to a Go duration.
	RefreshInterval time.Duration

	// SweepInterval is how often expired profiles are swept from the feed
	// cache. Defaults to 1h. Set SWEEP_INTERVAL to a Go duration.
	SweepInterval time.Duration

	// FeedWarmThreshold is the cached-profile count below which an
	// invalidation triggers an immediate rebuild instead of waiting for
	// the next drain. Defaults to 2.
	FeedWarmThreshold int

	// RebuildConcurrency bounds parallel per-location rebuilds in one
	// drain pass. Defaults to 4.
	RebuildConcurrency int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first malformed optional one.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PictureBaseURL: strings.TrimRight(getEnv("PICTURE_BASE_URL", "https://pictures.tripmatch.app"), "/"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.RefreshInterval, err = getDuration("REFRESH_INTERVAL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.FeedWarmThreshold, err = getInt("FEED_WARM_THRESHOLD", 2); err != nil {
		return Config{}, err
	}
	if cfg.RebuildConcurrency, err = getInt("REBUILD_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses the environment variable named by key as a Go duration,
// or returns fallback when the variable is not set.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

// getInt parses the environment variable named by key as an integer,
// or returns fallback when the variable is not set.
func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
