// Package version reports build metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision()
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns the version set at link time, then the module version
// when installed with go install, then the VCS revision.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return Revision
}

// String returns a one-line build summary.
func String() string {
	s := fmt.Sprintf("termicon %s (%s, %s %s/%s)", GetVersion(), Revision, GoVersion, GoOS, GoArch)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value[:min(7, len(v.Value))]
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
