package ports

// LaunchdService abstracts macOS launchd operations for testability.
// Production code uses the maclaunchd adapter; tests use mocks.MockLaunchdService.
type LaunchdService interface {
	// PlistPath returns the path where the plist file should be stored.
	PlistPath() string

	// LogPath returns the path where scheduled run logs are written.
	LogPath() string

	// Install creates the plist file and loads the daily schedule.
	Install(hour, minute int) error

	// Uninstall unloads the service and removes the plist file.
	Uninstall() error

	// IsInstalled checks if the service is currently installed.
	IsInstalled() bool

	// Status reports whether the installed service is loaded.
	Status() (bool, error)
}
