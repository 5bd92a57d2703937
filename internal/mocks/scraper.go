package mocks

import (
	"io"
	"path/filepath"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// MockScraper implements ports.Scraper for testing.
type MockScraper struct {
	// Produce maps filenames to contents written into the output dir on Run.
	Produce map[string][]byte
	// Output is written to the run's output writer.
	Output string
	// Result is returned on success.
	Result ports.ScrapeResult
	// Err makes Run fail.
	Err error

	// FS receives the produced files. Usually the same MockFileSystem the
	// rest of the test uses.
	FS *MockFileSystem

	Runs int
}

// NewMockScraper creates a mock scraper producing into fs.
func NewMockScraper(fs *MockFileSystem) *MockScraper {
	return &MockScraper{
		Produce: make(map[string][]byte),
		Result:  ports.ScrapeResult{Runtime: "Python 3.11.9", Seconds: 1.5},
		FS:      fs,
	}
}

func (m *MockScraper) Run(workDir, outputDir string, out io.Writer) (ports.ScrapeResult, error) {
	m.Runs++
	if m.Err != nil {
		return ports.ScrapeResult{}, m.Err
	}
	if m.Output != "" {
		io.WriteString(out, m.Output)
	}
	for name, data := range m.Produce {
		m.FS.Files[filepath.Join(outputDir, name)] = data
	}
	return m.Result, nil
}

// Compile-time check that MockScraper implements ports.Scraper.
var _ ports.Scraper = (*MockScraper)(nil)
