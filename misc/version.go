// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

// Set at link time:
//
//	-ldflags "-X wcstyle/misc.version=... -X wcstyle/misc.gitHash=..."
var (
	appName = "wcstyle"
	version = "dev"
	gitHash = ""
)

// GetAppName returns application name.
func GetAppName() string {
	return appName
}

// GetVersion returns application version.
func GetVersion() string {
	return version
}

// GetGitHash returns git hash of the build, falling back to vcs information
// recorded by the toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
