package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/hebcard/internal/app"
	"github.com/hyperifyio/hebcard/internal/fetch"
)

var rootOpts struct {
	configPath string
	envFiles   []string
	flags      app.Config
}

var rootCmd = &cobra.Command{
	Use:           "hebcard",
	Short:         "Turn Hebrew dictionary entry pages into flashcard notes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.VersionString())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootOpts.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringSliceVar(&rootOpts.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading HEBCARD_* variables")
	pf.BoolVarP(&rootOpts.flags.Verbose, "verbose", "v", false, "Verbose logging")
	pf.StringVar(&rootOpts.flags.UserAgent, "user-agent", fetch.DefaultUserAgent, "User-Agent sent with page requests")
	pf.DurationVar(&rootOpts.flags.Timeout, "timeout", app.DefaultTimeout, "Timeout for a page request")
	pf.StringVar(&rootOpts.flags.CacheDir, "cache.dir", "", "Cache fetched pages in this directory; empty disables the cache")
	pf.DurationVar(&rootOpts.flags.CacheMaxAge, "cache.maxAge", 0, "Purge cached pages older than this before running; 0 disables")
	pf.BoolVar(&rootOpts.flags.CacheClear, "cache.clear", false, "Clear the cache directory before running")
	pf.BoolVar(&rootOpts.flags.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	pf.BoolVar(&rootOpts.flags.RespectRobots, "robots", true, "Skip pages the site's robots.txt disallows")
	pf.StringVar(&rootOpts.flags.DBPath, "db", app.DefaultDBPath, "SQLite note database path")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers the config file, then HEBCARD_* variables, then flags
// the user set explicitly. Unset values fall back to the flag defaults.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	if err := app.LoadEnvFiles(rootOpts.envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}

	cfg := app.Config{RespectRobots: true}
	if p := strings.TrimSpace(rootOpts.configPath); p != "" {
		fc, err := app.LoadConfigFile(p)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %s: %w", p, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	f := rootOpts.flags
	changed := cmd.Flags().Changed
	if changed("user-agent") || cfg.UserAgent == "" {
		cfg.UserAgent = f.UserAgent
	}
	if changed("timeout") || cfg.Timeout == 0 {
		cfg.Timeout = f.Timeout
	}
	if changed("cache.dir") {
		cfg.CacheDir = f.CacheDir
	}
	if changed("cache.maxAge") {
		cfg.CacheMaxAge = f.CacheMaxAge
	}
	if changed("cache.clear") {
		cfg.CacheClear = f.CacheClear
	}
	if changed("cache.strictPerms") {
		cfg.CacheStrictPerms = f.CacheStrictPerms
	}
	if changed("robots") {
		cfg.RespectRobots = f.RespectRobots
	}
	if changed("db") || cfg.DBPath == "" {
		cfg.DBPath = f.DBPath
	}
	if changed("verbose") {
		cfg.Verbose = f.Verbose
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}
