package cmd

import "fmt"

var (
	appVersion   = "dev"
	appBuildTime = "unknown"
)

// SetVersion records build information and enables --version.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", appVersion, appBuildTime)
}
