// Package buildconfig carries identifiers stamped into the binary at link
// time. Without ldflags the values fall back to development placeholders.
package buildconfig

var (
	// Set with -ldflags "-X .../internal/buildconfig.version=v1.2.3".
	version = "dev"
	// Set with -ldflags "-X .../internal/buildconfig.commit=<sha>".
	commit = "unknown"
)

// Version reports the stamped release version.
func Version() string {
	return version
}

// Commit reports the stamped git commit hash.
func Commit() string {
	return commit
}

// VersionInfo bundles the stamped identifiers for health and metrics
// responses.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
