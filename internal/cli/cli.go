// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mcdonaldj/slatepub/internal/adapters/execgit"
	"github.com/mcdonaldj/slatepub/internal/adapters/execscraper"
	"github.com/mcdonaldj/slatepub/internal/adapters/maclaunchd"
	"github.com/mcdonaldj/slatepub/internal/adapters/osfs"
	"github.com/mcdonaldj/slatepub/internal/config"
	"github.com/mcdonaldj/slatepub/internal/pipeline"
	"github.com/mcdonaldj/slatepub/internal/ports"
	"github.com/mcdonaldj/slatepub/internal/runlog"
	"github.com/mcdonaldj/slatepub/internal/validate"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// PipelineService provides pipeline operations for the CLI.
type PipelineService interface {
	// Run executes the pipeline; skipScrape publishes existing output as-is.
	Run(cfg *config.Config, skipScrape bool, scraperOut io.Writer) pipeline.RunResult
	// Scrape runs only the artifact producer.
	Scrape(cfg *config.Config, out io.Writer) (ports.ScrapeResult, error)
	// Validate checks the output directory for expected files.
	Validate(cfg *config.Config) (validate.Result, error)
}

// RunlogService provides run history for the CLI.
type RunlogService interface {
	Load() (*runlog.Log, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc   ConfigService
	PipelineSvc PipelineService
	RunlogSvc   RunlogService
	LaunchdSvc  ports.LaunchdService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string            { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

// defaultPipelineService wires the real adapters.
type defaultPipelineService struct{}

func (d *defaultPipelineService) deps(cfg *config.Config, out io.Writer) pipeline.Deps {
	return pipeline.Deps{
		Git:        execgit.New(),
		FS:         osfs.New(),
		Scraper:    execscraper.New(cfg.ScraperCommand, execscraper.WithPythonVersion(cfg.PythonVersion)),
		ScraperOut: out,
	}
}

func (d *defaultPipelineService) Run(cfg *config.Config, skipScrape bool, scraperOut io.Writer) pipeline.RunResult {
	deps := d.deps(cfg, scraperOut)
	deps.SkipScrape = skipScrape
	return pipeline.Run(cfg, deps)
}

func (d *defaultPipelineService) Scrape(cfg *config.Config, out io.Writer) (ports.ScrapeResult, error) {
	scraper := execscraper.New(cfg.ScraperCommand, execscraper.WithPythonVersion(cfg.PythonVersion))
	return scraper.Run(config.ExpandPath(cfg.RepoDir), cfg.OutputPath(), out)
}

func (d *defaultPipelineService) Validate(cfg *config.Config) (validate.Result, error) {
	return validate.Check(osfs.New(), cfg.OutputPath(), cfg.ExpectedFiles)
}

// defaultRunlogService wraps the runlog package functions.
type defaultRunlogService struct{}

func (d *defaultRunlogService) Load() (*runlog.Log, error) { return runlog.Load(config.StateDir()) }

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) pipelineSvc() PipelineService {
	if c.PipelineSvc != nil {
		return c.PipelineSvc
	}
	return &defaultPipelineService{}
}

func (c *CLI) runlogSvc() RunlogService {
	if c.RunlogSvc != nil {
		return c.RunlogSvc
	}
	return &defaultRunlogService{}
}

func (c *CLI) launchdSvc() ports.LaunchdService {
	if c.LaunchdSvc != nil {
		return c.LaunchdSvc
	}
	return maclaunchd.New()
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		// No command - would launch TUI, but we skip that for CLI testing
		fmt.Fprintln(c.Out, "No command specified. Use 'slatepub help' for usage.")
		return
	}

	switch c.Args[1] {
	case "run":
		c.RunPipeline(false)
	case "publish":
		c.RunPipeline(true)
	case "scrape":
		c.RunScrape()
	case "validate":
		c.RunValidate()
	case "list":
		c.ListRuns()
	case "status":
		c.ShowStatus()
	case "init":
		c.InitConfig()
	case "install":
		c.InstallLaunchd()
	case "uninstall":
		c.UninstallLaunchd()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "slatepub v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `slatepub - Calendar scrape-and-publish pipeline

Usage:
  slatepub                    Launch interactive TUI
  slatepub ui                 Launch interactive TUI
  slatepub run [--no-scrape]  Scrape, validate and publish to the hosting branch
  slatepub publish            Publish the existing output directory without scraping
  slatepub scrape             Run only the scraper
  slatepub validate           Check the output directory for expected calendars
  slatepub list               Show recorded pipeline runs
  slatepub status             Show schedule and last run
  slatepub init               Create default config file
  slatepub install [HH:MM]    Install daily launchd schedule (default 11:00)
  slatepub uninstall          Remove launchd schedule
  slatepub version, -v        Show version
  slatepub help, -h           Show this help

Config: ~/.slatepub/config.yaml`)
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	cfg := svc.DefaultConfig()
	if err := svc.Save(cfg); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// RunPipeline runs the run/publish commands.
func (c *CLI) RunPipeline(skipScrape bool) {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	if !skipScrape && len(c.Args) > 2 && c.Args[2] == "--no-scrape" {
		skipScrape = true
	}

	if skipScrape {
		fmt.Fprintf(c.Out, "%s Publishing %s to %s...\n", c.cyan("=>"), cfg.OutputDir, cfg.PublishBranch)
	} else {
		fmt.Fprintf(c.Out, "%s Scraping and publishing to %s...\n", c.cyan("=>"), cfg.PublishBranch)
	}

	result := c.pipelineSvc().Run(cfg, skipScrape, c.Out)
	if result.Err != nil {
		fmt.Fprintf(c.Err, "%s %s failed: %v\n", c.red("x"), result.Stage, result.Err)
		c.Exit(1)
		return
	}

	for _, name := range result.Validated.Present {
		fmt.Fprintf(c.Out, "  %s %s\n", c.green("+"), name)
	}
	for _, name := range result.Validated.Missing {
		fmt.Fprintf(c.Out, "  %s %s %s\n", c.gray("-"), c.gray(name), c.gray("(not produced)"))
	}

	pub := result.Publish
	switch {
	case pub.NothingToCommit:
		fmt.Fprintf(c.Out, "\n%s %s unchanged, nothing to commit\n", c.yellow("="), pub.Branch)
	case pub.BranchCreated:
		fmt.Fprintf(c.Out, "\n%s Bootstrapped %s with %d files (%s)\n",
			c.green("✓"), pub.Branch, pub.Files, shortHash(pub.Hash))
	default:
		fmt.Fprintf(c.Out, "\n%s Published %d files to %s (%s)\n",
			c.green("✓"), pub.Files, pub.Branch, shortHash(pub.Hash))
	}
}

// RunScrape runs only the scraper.
func (c *CLI) RunScrape() {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Running scraper into %s...\n", c.cyan("=>"), cfg.OutputDir)

	result, err := c.pipelineSvc().Scrape(cfg, c.Out)
	if err != nil {
		fmt.Fprintf(c.Err, "%s scrape failed: %v\n", c.red("x"), err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%s Scraper finished in %.1fs (%s)\n", c.green("✓"), result.Seconds, result.Runtime)
}

// RunValidate checks the output directory for expected calendars.
func (c *CLI) RunValidate() {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	result, err := c.pipelineSvc().Validate(cfg)
	for _, name := range result.Present {
		fmt.Fprintf(c.Out, "  %s %s\n", c.green("+"), name)
	}
	for _, name := range result.Missing {
		fmt.Fprintf(c.Out, "  %s %s\n", c.gray("-"), c.gray(name))
	}
	if err != nil {
		fmt.Fprintf(c.Err, "%s %v\n", c.red("x"), err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%s %d of %d expected files present\n",
		c.green("✓"), len(result.Present), len(cfg.ExpectedFiles))
}

// ListRuns prints recorded pipeline runs, newest first.
func (c *CLI) ListRuns() {
	l, err := c.runlogSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading run log: %v\n", err)
		c.Exit(1)
		return
	}
	if len(l.Runs) == 0 {
		fmt.Fprintln(c.Out, "No runs recorded yet.")
		return
	}

	for i := len(l.Runs) - 1; i >= 0; i-- {
		r := l.Runs[i]
		when := r.StartedAt.Format("2006-01-02 15:04")
		if r.NoOp {
			fmt.Fprintf(c.Out, "  %s  %s %s\n", when, c.gray("no-op"), c.gray("(tree unchanged)"))
			continue
		}
		fmt.Fprintf(c.Out, "  %s  %s %d files %s\n", when, c.green(shortHash(r.Commit)), r.Files, c.gray(r.Branch))
	}
}

// ShowStatus shows schedule state and the last recorded run.
func (c *CLI) ShowStatus() {
	svc := c.launchdSvc()

	if svc.IsInstalled() {
		loaded, err := svc.Status()
		switch {
		case err != nil:
			fmt.Fprintf(c.Out, "Schedule: %s (%v)\n", c.yellow("installed"), err)
		case loaded:
			fmt.Fprintf(c.Out, "Schedule: %s\n", c.green("installed and loaded"))
		default:
			fmt.Fprintf(c.Out, "Schedule: %s\n", c.yellow("installed but not loaded"))
		}
		fmt.Fprintf(c.Out, "Plist:    %s\n", svc.PlistPath())
		fmt.Fprintf(c.Out, "Logs:     %s\n", svc.LogPath())
	} else {
		fmt.Fprintf(c.Out, "Schedule: %s\n", c.gray("not installed"))
	}

	l, err := c.runlogSvc().Load()
	if err != nil || l.Latest() == nil {
		fmt.Fprintf(c.Out, "Last run: %s\n", c.gray("none"))
		return
	}
	last := l.Latest()
	if last.NoOp {
		fmt.Fprintf(c.Out, "Last run: %s (no-op)\n", last.StartedAt.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(c.Out, "Last run: %s (%d files, %s)\n",
			last.StartedAt.Format("2006-01-02 15:04"), last.Files, shortHash(last.Commit))
	}
}

// InstallLaunchd installs the daily schedule.
func (c *CLI) InstallLaunchd() {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	hour, minute := cfg.Schedule.Hour, cfg.Schedule.Minute
	if len(c.Args) > 2 {
		hour, minute, err = parseTime(c.Args[2])
		if err != nil {
			fmt.Fprintf(c.Err, "Invalid time %q: %v\n", c.Args[2], err)
			c.Exit(1)
			return
		}
	}

	if err := c.launchdSvc().Install(hour, minute); err != nil {
		fmt.Fprintf(c.Err, "Error installing schedule: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%s Daily run scheduled at %02d:%02d\n", c.green("✓"), hour, minute)
}

// UninstallLaunchd removes the daily schedule.
func (c *CLI) UninstallLaunchd() {
	if err := c.launchdSvc().Uninstall(); err != nil {
		fmt.Fprintf(c.Err, "Error uninstalling schedule: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%s Schedule removed\n", c.green("✓"))
}

// parseTime parses "HH:MM" into hour and minute.
func parseTime(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute")
	}
	return hour, minute, nil
}

// shortHash returns the first 7 characters of a hash, or the full hash if shorter
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
