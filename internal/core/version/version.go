// Package version reports what binary is running
package version

import (
	"runtime/debug"
	"sync"
)

// Overridden at link time, e.g.
//
//	go build -ldflags "-X autolink/internal/core/version.version=v0.3.0 -X autolink/internal/core/version.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build identifies an autolink binary
type Build struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Go      string `json:"go,omitempty"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var info = sync.OnceValue(func() Build {
	b := Build{Service: "autolink", Version: version, Commit: commit, Date: date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromModule(&b, bi)
	}
	return b
})

// Info returns the link time values, completed from the vcs stamp go build embeds
func Info() Build { return info() }

func fromModule(b *Build, bi *debug.BuildInfo) {
	b.Go = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
				if len(b.Commit) > 12 {
					b.Commit = b.Commit[:12]
				}
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
}
