// Package version holds build metadata injected at link time.
package version

// Set via ldflags, e.g.
// go build -ldflags "-X git.home.luguber.info/inful/staticbuild/internal/version.Version=v1.0.0".
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return "staticbuild " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
