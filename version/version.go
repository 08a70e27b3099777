// Package version holds build metadata injected at link time.
package version

import "runtime"

// Set via ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/jackzampolin/daihon/version.GitRelease=v0.1.0"
var (
	// GitRelease is the release tag or branch this binary was built from.
	GitRelease = "dev"

	// GitCommit is the commit hash.
	GitCommit = "unknown"

	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
)

// GoInfo reports the Go toolchain and platform of the build.
var GoInfo = runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH
