package mocks

import "github.com/mcdonaldj/slatepub/internal/ports"

// MockLaunchdService implements ports.LaunchdService for testing.
type MockLaunchdService struct {
	Installed bool
	Loaded    bool

	InstalledHour   int
	InstalledMinute int

	InstallErr   error
	UninstallErr error
	StatusErr    error
}

// NewMockLaunchdService creates a new mock launchd service.
func NewMockLaunchdService() *MockLaunchdService {
	return &MockLaunchdService{}
}

func (m *MockLaunchdService) PlistPath() string {
	return "/test/Library/LaunchAgents/com.user.slatepub.plist"
}

func (m *MockLaunchdService) LogPath() string {
	return "/test/.slatepub/slatepub.log"
}

func (m *MockLaunchdService) Install(hour, minute int) error {
	if m.InstallErr != nil {
		return m.InstallErr
	}
	m.Installed = true
	m.Loaded = true
	m.InstalledHour = hour
	m.InstalledMinute = minute
	return nil
}

func (m *MockLaunchdService) Uninstall() error {
	if m.UninstallErr != nil {
		return m.UninstallErr
	}
	m.Installed = false
	m.Loaded = false
	return nil
}

func (m *MockLaunchdService) IsInstalled() bool {
	return m.Installed
}

func (m *MockLaunchdService) Status() (bool, error) {
	if m.StatusErr != nil {
		return false, m.StatusErr
	}
	return m.Loaded, nil
}

// Compile-time check that MockLaunchdService implements ports.LaunchdService.
var _ ports.LaunchdService = (*MockLaunchdService)(nil)
