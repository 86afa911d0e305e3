package misc

import (
	"runtime/debug"
	"sync"
)

// Set at build time with -ldflags "-X h2t/misc.version=... -X h2t/misc.gitHash=...".
var (
	appName = "h2t"
	version = "development"
	gitHash = ""
)

var readHash = sync.OnceValue(func() string {
	if gitHash != "" {
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
})

// GetAppName returns program name to be used in text produced by the program.
func GetAppName() string {
	return appName
}

// GetVersion returns program version to be used in text produced by the program.
func GetVersion() string {
	return version
}

// GetGitHash returns git revision the program was built from.
func GetGitHash() string {
	return readHash()
}
