package app

import "fmt"

const appName = "domainshare"

// Set via ldflags, e.g.
// go build -ldflags "-X github.com/heartmarshall/domainshare-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version string reported by /health and startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
