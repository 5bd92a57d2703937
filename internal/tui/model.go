package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mcdonaldj/slatepub/internal/adapters/tuisvc"
	"github.com/mcdonaldj/slatepub/internal/config"
	"github.com/mcdonaldj/slatepub/internal/ports"
)

// View represents the current view state
type View int

const (
	RunsView View = iota
	ArtifactsView
)

// Model is the main TUI model
type Model struct {
	svc      ports.TUIService
	config   *config.Config
	view     View
	width    int
	height   int
	quitting bool
	running  bool

	runs      []ports.TUIRunInfo
	runCursor int

	artifacts      []ports.TUIArtifactInfo
	artifactCursor int

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Run    key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch view"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run pipeline"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a model backed by the real service.
func NewModel() (*Model, error) {
	return NewModelWithService(tuisvc.New())
}

// NewModelWithService creates a model backed by the given service.
func NewModelWithService(svc ports.TUIService) (*Model, error) {
	cfg, err := svc.LoadConfig()
	if err != nil {
		return nil, err
	}

	m := &Model{svc: svc, config: cfg, view: RunsView}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// reload refreshes runs and artifacts from the service.
func (m *Model) reload() error {
	runs, err := m.svc.ListRuns(m.config)
	if err != nil {
		return err
	}
	m.runs = runs
	if m.runCursor >= len(m.runs) {
		m.runCursor = 0
	}

	artifacts, err := m.svc.ListArtifacts(m.config)
	if err != nil {
		return err
	}
	m.artifacts = artifacts
	if m.artifactCursor >= len(m.artifacts) {
		m.artifactCursor = 0
	}

	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case runDoneMsg:
		m.running = false
		if msg.outcome.Error != nil {
			m.statusMsg = fmt.Sprintf("Run failed: %v", msg.outcome.Error)
			m.statusErr = true
		} else if msg.outcome.NoOp {
			m.statusMsg = "Run finished: tree unchanged, nothing to commit"
		} else {
			m.statusMsg = fmt.Sprintf("✓ Published %d files (%s)", msg.outcome.Files, shortHash(msg.outcome.Commit))
		}
		_ = m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.running {
			// Only quit is honored while a run is in flight
			if key.Matches(msg, keys.Quit) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Switch):
			if m.view == RunsView {
				m.view = ArtifactsView
			} else {
				m.view = RunsView
			}

		case key.Matches(msg, keys.Run):
			m.running = true
			m.statusMsg = "Running pipeline..."
			return m, m.runPipeline()
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.view {
	case RunsView:
		m.runCursor = clamp(m.runCursor+delta, 0, len(m.runs)-1)
	case ArtifactsView:
		m.artifactCursor = clamp(m.artifactCursor+delta, 0, len(m.artifacts)-1)
	}
}

// runDoneMsg carries the outcome of an async pipeline run.
type runDoneMsg struct {
	outcome ports.TUIRunOutcome
}

func (m *Model) runPipeline() tea.Cmd {
	return func() tea.Msg {
		return runDoneMsg{outcome: m.svc.RunPipeline(m.config)}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := " slatepub · runs "
	if m.view == ArtifactsView {
		title = " slatepub · artifacts "
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch m.view {
	case RunsView:
		b.WriteString(m.renderRuns())
	case ArtifactsView:
		b.WriteString(m.renderArtifacts())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move · tab switch · r run · q quit"))

	return appStyle.Render(b.String())
}

func (m *Model) renderRuns() string {
	if len(m.runs) == 0 {
		return dimStyle.Render("No runs recorded yet. Press r to run the pipeline.") + "\n"
	}

	var b strings.Builder
	for i, r := range m.runs {
		line := fmt.Sprintf("%s  %s", r.StartedAt.Format("2006-01-02 15:04"), describeRun(r))
		if i == m.runCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func describeRun(r ports.TUIRunInfo) string {
	if r.NoOp {
		return "no-op (tree unchanged)"
	}
	return fmt.Sprintf("%d files → %s (%s)", r.Files, r.Branch, shortHash(r.Commit))
}

func (m *Model) renderArtifacts() string {
	if len(m.artifacts) == 0 {
		return dimStyle.Render("No expected files configured.") + "\n"
	}

	var b strings.Builder
	for i, a := range m.artifacts {
		state := dimStyle.Render("missing")
		if a.Present {
			state = successBadge.Render(fmt.Sprintf("present (%d B)", a.SizeBytes))
		}
		line := fmt.Sprintf("%-24s %s", a.Name, state)
		if i == m.artifactCursor {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the TUI.
func Run() error {
	m, err := NewModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Helper functions
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
