package service

import (
	"context"
	"time"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/analyzer"
	"github.com/ludo-technologies/depscan/internal/config"
	"github.com/ludo-technologies/depscan/internal/version"
)

// DeadExportServiceImpl implements dead-export detection
type DeadExportServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewDeadExportService creates a new dead-export service
func NewDeadExportService(cfg *config.Config, pm domain.ProgressManager) *DeadExportServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &DeadExportServiceImpl{config: cfg, progress: pm}
}

// NewDeadExportServiceWithDefaults creates a dead-export service with default configuration
func NewDeadExportServiceWithDefaults() *DeadExportServiceImpl {
	return NewDeadExportService(config.DefaultConfig(), &NoOpProgressManager{})
}

// Analyze finds exported symbols no module in the tree imports. The
// graph build runs first so that every import carries its resolution
// result; detection reasons over resolved targets only.
func (s *DeadExportServiceImpl) Analyze(ctx context.Context, req domain.DeadExportsRequest) (*domain.DeadExportsResponse, error) {
	if req.Root == "" {
		return nil, domain.NewValidationError("no analysis root specified")
	}

	pipeline := NewPipeline(s.config, s.progress)
	result, err := pipeline.Run(ctx, req.Root, nil)
	if err != nil {
		return nil, err
	}

	analyzer.NewGraphBuilder(&analyzer.GraphBuilderConfig{
		Extensions: s.config.Discovery.Extensions,
	}).Build(result.Infos)

	analysis := analyzer.NewDeadExportDetector().Detect(result.Infos)

	return &domain.DeadExportsResponse{
		Analysis:    analysis,
		Warnings:    result.Warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}
