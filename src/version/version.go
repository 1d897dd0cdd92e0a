// Package version holds the CLI version string.
package version

// Version is the semantic version reported by `confsync version`. Release
// builds override it via -ldflags "-X confsync/src/version.Version=...".
var Version = "0.3.0"
