package app

import "time"

// Defaults applied by the CLI flags; ApplyFileConfig treats a field still at
// its default as unset.
const (
	DefaultTimeout = 20 * time.Second
	DefaultDBPath  = "hebcard.db"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Fetch
	UserAgent string
	Timeout   time.Duration

	// Page cache; empty CacheDir disables it
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	// Check robots.txt before fetching a page
	RespectRobots bool

	// Note store
	DBPath string

	Verbose bool
}
