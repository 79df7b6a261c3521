package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/analyzer"
	"github.com/ludo-technologies/depscan/internal/config"
	"github.com/ludo-technologies/depscan/internal/version"
)

// ImpactServiceImpl implements blast-radius analysis
type ImpactServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewImpactService creates a new impact service
func NewImpactService(cfg *config.Config, pm domain.ProgressManager) *ImpactServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ImpactServiceImpl{config: cfg, progress: pm}
}

// NewImpactServiceWithDefaults creates an impact service with default configuration
func NewImpactServiceWithDefaults() *ImpactServiceImpl {
	return NewImpactService(config.DefaultConfig(), &NoOpProgressManager{})
}

// Analyze computes the blast radius of changing the request target
func (s *ImpactServiceImpl) Analyze(ctx context.Context, req domain.ImpactRequest) (*domain.ImpactResponse, error) {
	if req.Root == "" {
		return nil, domain.NewValidationError("no analysis root specified")
	}
	if req.Target == "" {
		return nil, domain.NewValidationError("no target file specified")
	}

	pipeline := NewPipeline(s.config, s.progress)
	result, err := pipeline.Run(ctx, req.Root, nil)
	if err != nil {
		return nil, err
	}

	graph := analyzer.NewGraphBuilder(&analyzer.GraphBuilderConfig{
		Extensions: s.config.Discovery.Extensions,
	}).Build(result.Infos)

	target, err := s.normalizeTarget(req.Root, req.Target, graph)
	if err != nil {
		return nil, err
	}

	impactCfg := &analyzer.ImpactConfig{
		EntryPointNames:      s.config.Impact.EntryPointNames,
		NarrowThreshold:      s.config.Impact.NarrowThreshold,
		MediumThreshold:      s.config.Impact.MediumThreshold,
		EntrypointEscalation: s.config.Impact.EntrypointEscalation,
		MaxDepth:             s.config.Impact.MaxDepth,
	}
	if req.EntrypointEscalation != nil {
		impactCfg.EntrypointEscalation = *req.EntrypointEscalation
	}
	if req.MaxDepth > 0 {
		impactCfg.MaxDepth = req.MaxDepth
	}

	report, err := analyzer.NewImpactAnalyzer(impactCfg).Analyze(graph, target)
	if err != nil {
		return nil, err
	}

	return &domain.ImpactResponse{
		Report:      report,
		Warnings:    result.Warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}

// normalizeTarget maps the request target, which may be absolute or
// root-relative in native notation, onto a module ID in the graph
func (s *ImpactServiceImpl) normalizeTarget(root, target string, graph *domain.DependencyGraph) (string, error) {
	id := filepath.ToSlash(target)
	id = strings.TrimPrefix(id, "./")
	if graph.GetNode(id) != nil {
		return id, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", domain.NewTargetNotFoundError(target)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", domain.NewTargetNotFoundError(target)
	}
	if rel, err := filepath.Rel(absRoot, absTarget); err == nil {
		relID := filepath.ToSlash(rel)
		if graph.GetNode(relID) != nil {
			return relID, nil
		}
	}

	return "", domain.NewTargetNotFoundError(target)
}
