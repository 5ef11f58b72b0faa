package version

import (
	"runtime/debug"
)

// Version is the build version, set via -ldflags for releases. Dev
// builds fall back to the git commit hash from embedded VCS info.
var Version = "dev"

func init() {
	// If Version was set via ldflags, use it
	if Version != "dev" {
		return
	}

	// Fall back to VCS info for development builds
	Version = getVersionFromVCS()
}

func getVersionFromVCS() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}

	// Use short hash
	if len(revision) > 7 {
		revision = revision[:7]
	}

	// Mark dirty builds
	if modified {
		revision += "-dirty"
	}

	return revision
}
