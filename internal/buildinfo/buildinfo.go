// Package buildinfo exposes version data injected at link time:
//
//	go build -ldflags "-X github.com/flashly/flashly/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/flashly/flashly/internal/buildinfo.buildDate=$(date -u +%F) \
//	  -X github.com/flashly/flashly/internal/buildinfo.buildCommit=$(git rev-parse --short HEAD)" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// Version returns the version string, "N/A" when not injected.
func Version() string { return buildVersion }

// PrintBuildData writes version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
