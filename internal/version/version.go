// Package version exposes the build metadata stamped into the annex binary.
package version

// Overridden at release time via -ldflags "-X github.com/annex-search/annex/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	BuiltAt = "unknown"
)
