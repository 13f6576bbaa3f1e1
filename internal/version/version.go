// Package version carries build metadata stamped by the linker.
package version

import "fmt"

// Stamped with -ldflags "-X github.com/ericogr/agent-arena/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Summary renders the metadata for the startup log line.
func Summary() string {
	s := fmt.Sprintf("%s (%s", Version, Commit)
	if Dirty == "true" {
		s += ", dirty"
	}
	if Date != "" {
		s += ", " + Date
	}
	return s + ")"
}
