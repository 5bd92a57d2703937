// Package execscraper runs the external artifact producer using exec.Command.
//
// The scraper itself is opaque: slatepub only cares that it drops calendar
// files into the output directory. The adapter's one hard requirement is
// the pinned interpreter minor version, checked before every run.
package execscraper

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// ExecScraper implements ports.Scraper using exec.Command.
type ExecScraper struct {
	// command is the scraper command line, e.g. ["python3", "scraper.py"].
	command []string
	// pythonVersion is the required interpreter minor version prefix,
	// e.g. "3.11". Empty disables the check.
	pythonVersion string
}

// Option is a functional option for configuring ExecScraper.
type Option func(*ExecScraper)

// WithPythonVersion requires the interpreter to report the given minor version.
func WithPythonVersion(version string) Option {
	return func(s *ExecScraper) {
		s.pythonVersion = version
	}
}

// New creates a new ExecScraper running the given command line.
func New(command []string, opts ...Option) *ExecScraper {
	s := &ExecScraper{command: command}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the scraper in workDir. The output directory is passed via
// the SLATEPUB_OUTPUT_DIR environment variable and as the final argument,
// covering both calling conventions the producer may use.
func (s *ExecScraper) Run(workDir, outputDir string, out io.Writer) (ports.ScrapeResult, error) {
	var result ports.ScrapeResult

	if len(s.command) == 0 {
		return result, fmt.Errorf("no scraper command configured")
	}

	runtime, err := s.checkRuntime()
	if err != nil {
		return result, err
	}
	result.Runtime = runtime

	start := time.Now()
	cmd := exec.Command(s.command[0], append(s.command[1:], outputDir)...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "SLATEPUB_OUTPUT_DIR="+outputDir)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return result, fmt.Errorf("scraper failed: %w", err)
	}
	result.Seconds = time.Since(start).Seconds()

	return result, nil
}

// checkRuntime verifies the pinned interpreter version and returns the
// version string the interpreter reports.
func (s *ExecScraper) checkRuntime() (string, error) {
	out, err := exec.Command(s.command[0], "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("checking %s version: %w", s.command[0], err)
	}
	version := strings.TrimSpace(string(out))

	if s.pythonVersion == "" {
		return version, nil
	}

	// "Python 3.11.9" -> "3.11.9"
	fields := strings.Fields(version)
	if len(fields) == 0 {
		return version, fmt.Errorf("%s reported no version, want %s.x", s.command[0], s.pythonVersion)
	}
	reported := fields[len(fields)-1]
	if reported != s.pythonVersion && !strings.HasPrefix(reported, s.pythonVersion+".") {
		return version, fmt.Errorf("scraper runtime is %s, want %s.x", reported, s.pythonVersion)
	}
	return version, nil
}

// Compile-time check that ExecScraper implements ports.Scraper.
var _ ports.Scraper = (*ExecScraper)(nil)
