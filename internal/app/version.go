package app

import (
	"cmp"
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/precast-backend/internal/app.Version=1.4.0".
// Commit and BuildTime default to the VCS stamp the go tool embeds.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion formats the build for the startup log, /health and
// precastctl --version.
func BuildVersion() string {
	rev, at := vcsStamp()
	return fmt.Sprintf("%s (commit %s, built %s)",
		Version,
		cmp.Or(Commit, rev, "unknown"),
		cmp.Or(BuildTime, at, "unknown"),
	)
}

func vcsStamp() (rev, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}

	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev, at
}
