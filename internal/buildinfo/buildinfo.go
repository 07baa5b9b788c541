// Package buildinfo exposes version information injected at link time via
// -ldflags "-X github.com/joyent/promstat/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version string
	Date    string
	Commit  string
)

// Banner returns a one-line description of this build.
func Banner() string {
	return fmt.Sprintf("promstat %s (built %s, commit %s)", orNA(Version), orNA(Date), orNA(Commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
