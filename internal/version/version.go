// Package version carries build metadata injected via -ldflags.
package version

var (
	// Version is the current chopctl version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
