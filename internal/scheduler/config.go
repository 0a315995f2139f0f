package scheduler

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the automatic night audit loop.
type Config struct {
	RunInterval time.Duration
	JobTimeout  time.Duration
	Disabled    bool
}

func DefaultConfig() Config {
	return Config{
		RunInterval: time.Minute,
		JobTimeout:  5 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}

func ProvideConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("NIGHT_AUDIT_RUN_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cfg.RunInterval = parsed
		}
	}
	if v := os.Getenv("NIGHT_AUDIT_JOB_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cfg.JobTimeout = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("NIGHT_AUDIT_SCHEDULER_DISABLED")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Disabled = parsed
		}
	}
	return cfg
}
