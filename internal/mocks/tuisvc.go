package mocks

import (
	"github.com/mcdonaldj/slatepub/internal/config"
	"github.com/mcdonaldj/slatepub/internal/ports"
)

// MockTUIService implements ports.TUIService for testing.
type MockTUIService struct {
	ConfigResult *config.Config
	ConfigErr    error

	Runs         []ports.TUIRunInfo
	RunsErr      error
	Artifacts    []ports.TUIArtifactInfo
	ArtifactsErr error

	RunOutcome   ports.TUIRunOutcome
	PipelineRuns int
}

// NewMockTUIService creates a new mock TUI service.
func NewMockTUIService() *MockTUIService {
	return &MockTUIService{
		ConfigResult: config.DefaultConfig(),
	}
}

func (m *MockTUIService) LoadConfig() (*config.Config, error) {
	if m.ConfigErr != nil {
		return nil, m.ConfigErr
	}
	return m.ConfigResult, nil
}

func (m *MockTUIService) ListRuns(cfg *config.Config) ([]ports.TUIRunInfo, error) {
	if m.RunsErr != nil {
		return nil, m.RunsErr
	}
	return m.Runs, nil
}

func (m *MockTUIService) ListArtifacts(cfg *config.Config) ([]ports.TUIArtifactInfo, error) {
	if m.ArtifactsErr != nil {
		return nil, m.ArtifactsErr
	}
	return m.Artifacts, nil
}

func (m *MockTUIService) RunPipeline(cfg *config.Config) ports.TUIRunOutcome {
	m.PipelineRuns++
	return m.RunOutcome
}

// Compile-time check that MockTUIService implements ports.TUIService.
var _ ports.TUIService = (*MockTUIService)(nil)
