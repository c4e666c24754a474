// Package version provides build version information and the version command.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags at build time:
//
//	-X github.com/jongio/pac-read/version.Version=1.0.0
var (
	Version   = "0.0.0-dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info holds version information for a binary.
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	Name      string `json:"name"`
}

// New creates an Info from the ldflags values. Commit and date fall back to
// the VCS stamp embedded by the Go toolchain when ldflags were not set.
func New(name string) *Info {
	info := &Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		Name:      name,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fillFromBuildSettings(bi.Settings)
	}
	return info
}

func (i *Info) fillFromBuildSettings(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "unknown" && s.Value != "" {
				i.GitCommit = s.Value
			}
		case "vcs.time":
			if i.BuildDate == "unknown" && s.Value != "" {
				i.BuildDate = s.Value
			}
		}
	}
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
