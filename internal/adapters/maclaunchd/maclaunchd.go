// Package maclaunchd schedules the daily pipeline run via macOS launchd.
package maclaunchd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

const label = "com.user.slatepub"

// launchd fires StartCalendarInterval in local time; pick a schedule hour
// that lines up with the intended daily UTC slot for your timezone.
const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.user.slatepub</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.BinaryPath}}</string>
        <string>run</string>
    </array>
    <key>StartCalendarInterval</key>
    <dict>
        <key>Hour</key>
        <integer>{{.Hour}}</integer>
        <key>Minute</key>
        <integer>{{.Minute}}</integer>
    </dict>
    <key>RunAtLoad</key>
    <false/>
    <key>StandardOutPath</key>
    <string>{{.LogPath}}</string>
    <key>StandardErrorPath</key>
    <string>{{.LogPath}}</string>
</dict>
</plist>
`

type plistConfig struct {
	BinaryPath string
	Hour       int
	Minute     int
	LogPath    string
}

// MacLaunchdService implements ports.LaunchdService.
type MacLaunchdService struct{}

// New creates a new MacLaunchdService adapter.
func New() *MacLaunchdService {
	return &MacLaunchdService{}
}

func (s *MacLaunchdService) PlistPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "." // Fallback - will fail gracefully when accessing Library/LaunchAgents
	}
	return filepath.Join(home, "Library", "LaunchAgents", label+".plist")
}

func (s *MacLaunchdService) LogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".slatepub", "slatepub.log")
}

func (s *MacLaunchdService) Install(hour, minute int) error {
	// Find slatepub binary
	binaryPath, err := exec.LookPath("slatepub")
	if err != nil {
		return fmt.Errorf("slatepub not found in PATH: %w", err)
	}

	// Ensure log directory exists
	logPath := s.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	tmpl, err := template.New("plist").Parse(plistTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	// Ensure LaunchAgents directory exists
	plistPath := s.PlistPath()
	if err := os.MkdirAll(filepath.Dir(plistPath), 0755); err != nil {
		return fmt.Errorf("creating LaunchAgents directory: %w", err)
	}

	f, err := os.Create(plistPath)
	if err != nil {
		return fmt.Errorf("creating plist: %w", err)
	}

	cfg := plistConfig{
		BinaryPath: binaryPath,
		Hour:       hour,
		Minute:     minute,
		LogPath:    logPath,
	}
	if err := tmpl.Execute(f, cfg); err != nil {
		f.Close()
		return fmt.Errorf("writing plist: %w", err)
	}

	// Close file BEFORE loading to ensure data is flushed
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing plist file: %w", err)
	}

	cmd := exec.Command("launchctl", "load", plistPath)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("loading plist: %w", err)
	}

	return nil
}

func (s *MacLaunchdService) Uninstall() error {
	plistPath := s.PlistPath()

	if _, err := os.Stat(plistPath); os.IsNotExist(err) {
		return fmt.Errorf("plist not found: %s", plistPath)
	}

	// Unload the plist
	cmd := exec.Command("launchctl", "unload", plistPath)
	_ = cmd.Run() // Ignore error if not loaded

	if err := os.Remove(plistPath); err != nil {
		return fmt.Errorf("removing plist: %w", err)
	}

	return nil
}

func (s *MacLaunchdService) IsInstalled() bool {
	_, err := os.Stat(s.PlistPath())
	return err == nil
}

func (s *MacLaunchdService) Status() (bool, error) {
	if !s.IsInstalled() {
		return false, nil
	}

	cmd := exec.Command("launchctl", "list", label)
	err := cmd.Run()
	return err == nil, nil
}

// Compile-time check that MacLaunchdService implements ports.LaunchdService.
var _ ports.LaunchdService = (*MacLaunchdService)(nil)
