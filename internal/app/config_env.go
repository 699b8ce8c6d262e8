package app

import (
	"os"
	"strings"
	"time"
)

// Environment variables read by ApplyEnvToConfig and ApplyEnvOverrides.
const (
	EnvUserAgent   = "HEBCARD_USER_AGENT"
	EnvTimeout     = "HEBCARD_TIMEOUT"
	EnvCacheDir    = "HEBCARD_CACHE_DIR"
	EnvCacheMaxAge = "HEBCARD_CACHE_MAX_AGE"
	EnvDB          = "HEBCARD_DB"
	EnvVerbose     = "HEBCARD_VERBOSE"
	EnvRobots      = "HEBCARD_ROBOTS"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv(EnvUserAgent)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv(EnvCacheDir)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv(EnvDB)
	}
	if cfg.Timeout == 0 {
		setDuration(&cfg.Timeout, EnvTimeout)
	}
	if cfg.CacheMaxAge == 0 {
		setDuration(&cfg.CacheMaxAge, EnvCacheMaxAge)
	}
	if !cfg.Verbose {
		if v, ok := envBool(EnvVerbose); ok {
			cfg.Verbose = v
		}
	}
	if !cfg.RespectRobots {
		if v, ok := envBool(EnvRobots); ok {
			cfg.RespectRobots = v
		}
	}
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment
// variables that are set. This lets env take precedence over a config file
// while flags stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	setDuration(&cfg.Timeout, EnvTimeout)
	setDuration(&cfg.CacheMaxAge, EnvCacheMaxAge)
	if v, ok := envBool(EnvVerbose); ok {
		cfg.Verbose = v
	}
	if v, ok := envBool(EnvRobots); ok {
		cfg.RespectRobots = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			*dst = d
		}
	}
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
