package service

import (
	"context"
	"time"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/analyzer"
	"github.com/ludo-technologies/depscan/internal/config"
	"github.com/ludo-technologies/depscan/internal/version"
)

// GraphServiceImpl implements dependency graph analysis
type GraphServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewGraphService creates a new graph service
func NewGraphService(cfg *config.Config, pm domain.ProgressManager) *GraphServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &GraphServiceImpl{config: cfg, progress: pm}
}

// NewGraphServiceWithDefaults creates a graph service with default configuration
func NewGraphServiceWithDefaults() *GraphServiceImpl {
	return NewGraphService(config.DefaultConfig(), &NoOpProgressManager{})
}

// Analyze performs complete dependency graph analysis for a tree
func (s *GraphServiceImpl) Analyze(ctx context.Context, req domain.GraphRequest) (*domain.GraphResponse, error) {
	if req.Root == "" {
		return nil, domain.NewValidationError("no analysis root specified")
	}

	pipeline := NewPipeline(s.config, s.progress)
	result, err := pipeline.Run(ctx, req.Root, req.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	builder := analyzer.NewGraphBuilder(&analyzer.GraphBuilderConfig{
		Extensions: s.config.Discovery.Extensions,
	})
	graph := builder.Build(result.Infos)
	summary := builder.Summarize(graph, result.Infos)

	var cycles *domain.CircularDependencyAnalysis
	detect := s.config.Cycles.Enabled
	if req.DetectCycles != nil {
		detect = *req.DetectCycles
	}
	if detect {
		cycles = analyzer.NewCycleDetector().DetectCycles(graph)
	}

	return &domain.GraphResponse{
		Graph:       graph,
		Summary:     summary,
		Cycles:      cycles,
		Warnings:    result.Warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}
