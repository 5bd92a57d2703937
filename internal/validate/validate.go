// Package validate checks that the scraper actually produced output.
//
// The producer is allowed to skip individual calendars (a venue may have
// published nothing for the window), so a partial set is fine. Publishing
// an empty set is not: that would wipe the hosted calendars, so the
// pipeline fails closed before any git operation runs.
package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// ErrNoArtifacts means none of the expected files exist in the output directory.
var ErrNoArtifacts = errors.New("no expected output files found")

// Result reports which expected files were produced, in configured order.
type Result struct {
	Present []string
	Missing []string
}

// Check inspects dir for the expected filenames. It succeeds when at
// least one is present and returns ErrNoArtifacts (wrapped with the
// directory and expected set) when all are absent.
func Check(fs ports.FileSystem, dir string, expected []string) (Result, error) {
	var result Result

	for _, name := range expected {
		info, err := fs.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			result.Missing = append(result.Missing, name)
			continue
		}
		result.Present = append(result.Present, name)
	}

	if len(result.Present) == 0 {
		return result, fmt.Errorf("%w in %s (expected one of: %s)",
			ErrNoArtifacts, dir, strings.Join(expected, ", "))
	}

	return result, nil
}
