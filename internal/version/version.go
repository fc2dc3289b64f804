package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"     // Version string (e.g., "v0.3.0")
	GitCommit = "unknown" // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// GetVersion returns the version string for the application
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	// `go install module@version` records the module version in build info
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	return "dev"
}

// GetFullVersion returns the version plus a short commit hash when known
func GetFullVersion() string {
	v := GetVersion()
	if GitCommit == "unknown" || GitCommit == "" {
		return v
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, BuildTime)
}
