package app

import "fmt"

// Build information set with -ldflags "-X github.com/hyperifyio/hebcard/internal/app.BuildVersion=...".
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// VersionString is printed by the version command.
func VersionString() string {
	return fmt.Sprintf("hebcard %s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}
