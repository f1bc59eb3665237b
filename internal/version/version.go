// Package version carries build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// UserAgent identifies pvegraph in outgoing HTTP requests.
func UserAgent() string {
	return "pvegraph/" + Version
}

func (i Info) String() string {
	return fmt.Sprintf("pvegraph %s (%s) built at %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.Platform,
	)
}
