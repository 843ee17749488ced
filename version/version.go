package version

// Set via ldflags during release builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the short version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date, for the
// verbose version output.
func GetFullVersion() string {
	if Version == "dev" {
		return "dev"
	}
	return Version + " (" + GitCommit + ", " + BuildDate + ")"
}
