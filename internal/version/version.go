// Package version reports build metadata set through -ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"     //  via ldflags
	GitCommit = "none"    //  via ldflags
	BuildDate = "unknown" //  via ldflags
)

type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	OS        string
	Arch      string
}

// Get returns the ldflags values. A "go install" build carries no
// ldflags, so the module version and VCS stamp are used instead.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}

	for _, s := range build.Settings {
		switch {
		case s.Key == "vcs.revision" && info.GitCommit == "none":
			info.GitCommit = shortRevision(s.Value)
		case s.Key == "vcs.time" && info.BuildDate == "unknown":
			info.BuildDate = s.Value
		}
	}

	return info
}

func (i Info) String() string {
	return fmt.Sprintf("safesync %s (%s, built %s, %s %s/%s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.OS, i.Arch)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
