package service

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/config"
	"github.com/ludo-technologies/depscan/internal/discover"
	"github.com/ludo-technologies/depscan/internal/extractor"
)

// Pipeline runs the shared front half of every analysis: discover the
// tree, read each file, extract its imports and exports. Extraction is
// per-file independent and runs on a bounded worker pool.
type Pipeline struct {
	config   *config.Config
	progress domain.ProgressManager
}

// PipelineResult carries the extraction output plus recoverable problems
type PipelineResult struct {
	// Infos maps module ID to its extraction result
	Infos map[string]*domain.ModuleInfo

	// Files are the discovered module files
	Files []*domain.ModuleFile

	// Warnings are per-file recoverable problems (unreadable, unparseable)
	Warnings []string
}

// NewPipeline creates a Pipeline for the given configuration
func NewPipeline(cfg *config.Config, pm domain.ProgressManager) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &Pipeline{config: cfg, progress: pm}
}

// Run discovers and extracts every module file under root
func (p *Pipeline) Run(ctx context.Context, root string, excludeDirs []string) (*PipelineResult, error) {
	walkerCfg := &discover.Config{
		Extensions:       p.config.Discovery.Extensions,
		ExcludeDirs:      p.config.Discovery.ExcludeDirs,
		RespectGitignore: p.config.Discovery.RespectGitignore,
	}
	if len(excludeDirs) > 0 {
		walkerCfg.ExcludeDirs = excludeDirs
	}

	files, err := discover.NewWalker(walkerCfg).Discover(root)
	if err != nil {
		return nil, err
	}

	infos, warnings, err := p.extract(ctx, files)
	if err != nil {
		return nil, err
	}

	return &PipelineResult{Infos: infos, Files: files, Warnings: warnings}, nil
}

// extract runs the configured extraction engine over all files. Workers
// each own an extractor instance; tree-sitter parsers are not safe for
// concurrent use. Results merge under a mutex after the group waits.
func (p *Pipeline) extract(ctx context.Context, files []*domain.ModuleFile) (map[string]*domain.ModuleInfo, []string, error) {
	infos := make(map[string]*domain.ModuleInfo, len(files))
	var warnings []string
	var mu sync.Mutex

	task := p.progress.StartTask("Extracting imports", len(files))
	defer task.Complete()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		file := file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ext := extractor.New(extractor.Engine(p.config.Extractor.Engine))

			source, err := os.ReadFile(file.AbsPath)
			if err != nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", file.ID, err))
				mu.Unlock()
				return nil
			}
			file.Source = source

			info, err := ext.Extract(file)
			file.Source = nil
			if err != nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("Failed to extract %s: %v", file.ID, err))
				mu.Unlock()
				task.Increment(1)
				return nil
			}

			mu.Lock()
			infos[file.ID] = info
			mu.Unlock()
			task.Increment(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, domain.NewAnalysisError("extraction cancelled", err)
	}

	sort.Strings(warnings)
	return infos, warnings, nil
}
