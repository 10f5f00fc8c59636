// ============================================================================
// lexan - Lexical and Syntax Analysis Engine
// ============================================================================
//
// Package:     version
// Description: Central version management for the engine and its services
// Author:      msto63
// Created:     2026-09-28
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Platform version
	Platform = "0.2.0"

	// Component versions
	Engine  = "0.2.0"
	Server  = "0.2.0"
	Gateway = "0.2.0"
)

// Set at build time with -ldflags "-X github.com/msto63/lexan/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "server", "grpc":
		return Server
	case "gateway", "http":
		return Gateway
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Platform,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line description
func (i Info) String() string {
	return fmt.Sprintf("lexan %s (commit %s, built %s, %s, %s)", i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
