// Package version resolves the binary's version string.
package version

import "runtime/debug"

// version can be stamped at release time via
// -ldflags "-X github.com/GenAICloudDevOps/clio-ai/internal/version.version=v1.2.3".
var version string

// Get returns the stamped release version, falling back to module build
// info for go-install and development builds.
func Get() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}
