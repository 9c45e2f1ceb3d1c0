// Package version holds build metadata injected at link time.
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the full build identification line.
func String() string {
	return fmt.Sprintf("posecheck %s (%s, built %s)", Version, GitSHA, BuildTime)
}
