// Package version exposes build metadata for the CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the application version, set via ldflags. It falls back to the
// module version recorded in build info.
var Version string

// Info describes the running build.
type Info struct {
	Version   string
	Revision  string
	GoVersion string
	Platform  string
}

// Get collects build metadata from ldflags and [debug.ReadBuildInfo].
func Get() Info {
	info := Info{
		Version:   Version,
		Revision:  "unknown",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		if info.Version == "" {
			info.Version = "devel"
		}

		return info
	}

	if info.Version == "" {
		info.Version = buildInfo.Main.Version
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			info.Revision = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		info.Revision += "-dirty"
	}

	return info
}

// String renders the info on one line, suitable for a --version flag.
func (i Info) String() string {
	return fmt.Sprintf("%s (revision %s, %s, %s)", i.Version, i.Revision, i.GoVersion, i.Platform)
}
