package ports

import "io"

// ScrapeResult contains the outcome of one scraper invocation.
type ScrapeResult struct {
	// Runtime is the interpreter version string that ran the scraper.
	Runtime string
	// Seconds is the wall-clock duration of the run.
	Seconds float64
}

// Scraper abstracts the external artifact producer. The producer is an
// opaque process; the only contract is that it writes zero or more of the
// expected calendar files into the output directory.
// Production code uses the execscraper adapter; tests use mocks.MockScraper.
type Scraper interface {
	// Run executes the scraper in workDir with outputDir as its target,
	// streaming combined output to out.
	Run(workDir, outputDir string, out io.Writer) (ScrapeResult, error)
}
