package app

import "fmt"

// Set via ldflags, e.g.
// go build -ldflags "-X github.com/sujay090/Dynamic-form-sub001/internal/app.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string reported at startup and by the
// health checks.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
