// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     version
// Description: Central version information for the CLI and servers
// Author:      LearnWithSuryaa
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Application version
	App = "0.3.0"

	// API version of the HTTP and gRPC surfaces
	API = "v1"
)

// Set at build time with -ldflags "-X .../version.Commit=... -X .../version.BuildDate=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// Info describes the running build
type Info struct {
	Version   string `json:"version"`
	API       string `json:"api"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   App,
		API:       API,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("krama %s (api %s, commit %s, built %s, %s %s)",
		i.Version, i.API, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
