// Package version reports which saki build is running.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// Release builds set these with
// -ldflags "-X github.com/sakiengine/saki/pkg/version.Version=v0.4.0 ...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes a build.
type Info struct {
	Version string
	Commit  string
	Date    string
	Go      string
}

// Get returns the linked build variables. Values left unset are taken from
// the build metadata embedded by go install and go build.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String formats the info for --version output.
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		details = append(details, "commit "+shortCommit(i.Commit))
	}
	if i.Date != "" {
		details = append(details, "built "+i.Date)
	}
	if i.Go != "" {
		details = append(details, i.Go)
	}
	if len(details) == 0 {
		return i.Version
	}
	return i.Version + " (" + strings.Join(details, ", ") + ")"
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
