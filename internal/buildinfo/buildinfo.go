// Package buildinfo carries the version stamped in by the build:
//
//	tinygo flash -target pico -ldflags "-X tx42/internal/buildinfo.Version=v1.2.0" .
package buildinfo

import "strings"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the most specific identifier available: a release
// version, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// Long is Short plus whatever commit and date are known, for the boot log.
func Long() string {
	parts := []string{Short()}
	if Commit != "" && Commit != "unknown" && !strings.HasPrefix(Commit, parts[0]) {
		parts = append(parts, Commit)
	}
	if Date != "" && Date != "unknown" {
		parts = append(parts, Date)
	}
	return strings.Join(parts, " ")
}
