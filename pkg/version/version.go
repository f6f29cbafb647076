// Package version describes the sharpalign build. Values come from -ldflags
// when set and from the module build info otherwise.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// These variables are set at build time using ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildDate = "unknown"
)

const shortCommit = 12

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildDate string `json:"buildDate"`
	Modified  bool   `json:"modified"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the ldflags values.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// FromBuildInfo fills the values ldflags left unset from bi: the module
// version of a `go install`, and the vcs.* settings of a build from a
// checkout.
func FromBuildInfo(bi *debug.BuildInfo) Info {
	info := Get()
	if bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
				if len(info.GitCommit) > shortCommit {
					info.GitCommit = info.GitCommit[:shortCommit]
				}
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String returns a human-readable version string
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sharpalign version %s", i.Version)
	if i.GitTag != "unknown" && i.GitTag != i.Version {
		fmt.Fprintf(&sb, " (%s)", i.GitTag)
	}
	commit := i.GitCommit
	if i.Modified {
		commit += " (modified)"
	}
	fmt.Fprintf(&sb, "\nCommit: %s\nBuilt: %s\n%s %s", commit, i.BuildDate, i.GoVersion, i.Platform)
	return sb.String()
}
