package analyzer

import (
	"path"
	"sort"
	"strings"

	"github.com/ludo-technologies/depscan/domain"
)

// DefaultEntryPointNames are base filenames (extension stripped) that
// signal a runnable program entry point
var DefaultEntryPointNames = []string{"index", "main", "server", "app", "cli", "worker"}

// ImpactConfig configures blast-radius analysis
type ImpactConfig struct {
	// EntryPointNames are base filenames treated as entry points
	EntryPointNames []string

	// NarrowThreshold is the largest affected-file count still narrow
	NarrowThreshold int

	// MediumThreshold is the largest affected-file count still medium
	MediumThreshold int

	// EntrypointEscalation escalates a medium radius to wide when an
	// entry point is reached
	EntrypointEscalation bool

	// MaxDepth bounds the reverse traversal (0 = unlimited)
	MaxDepth int
}

// DefaultImpactConfig returns the default thresholds
func DefaultImpactConfig() *ImpactConfig {
	return &ImpactConfig{
		EntryPointNames:      DefaultEntryPointNames,
		NarrowThreshold:      5,
		MediumThreshold:      20,
		EntrypointEscalation: true,
	}
}

// ImpactAnalyzer computes the blast radius of a change to one module
type ImpactAnalyzer struct {
	config *ImpactConfig
	names  map[string]bool
}

// NewImpactAnalyzer creates a new ImpactAnalyzer
func NewImpactAnalyzer(config *ImpactConfig) *ImpactAnalyzer {
	if config == nil {
		config = DefaultImpactConfig()
	}
	names := make(map[string]bool, len(config.EntryPointNames))
	for _, n := range config.EntryPointNames {
		names[strings.ToLower(n)] = true
	}
	return &ImpactAnalyzer{config: config, names: names}
}

// Analyze runs a breadth-first search over the reverse graph from the
// target. Depths are first-discovery depths, which BFS guarantees are
// the fewest import hops back to the target. A target nobody imports
// yields an empty narrow report.
func (a *ImpactAnalyzer) Analyze(graph *domain.DependencyGraph, target string) (*domain.ImpactReport, error) {
	if graph == nil || graph.GetNode(target) == nil {
		return nil, domain.NewTargetNotFoundError(target)
	}

	depths := map[string]int{target: 0}
	queue := []string{target}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		depth := depths[curr]

		if a.config.MaxDepth > 0 && depth >= a.config.MaxDepth {
			continue
		}
		for _, importer := range graph.Importers(curr) {
			if _, seen := depths[importer]; seen {
				continue
			}
			depths[importer] = depth + 1
			queue = append(queue, importer)
		}
	}
	delete(depths, target)

	report := &domain.ImpactReport{
		Target: target,
		Depths: depths,
	}

	var entryPoints []string
	for id, depth := range depths {
		isEntry := a.IsEntryPoint(id)
		report.Affected = append(report.Affected, domain.AffectedModule{
			ID:           id,
			Depth:        depth,
			IsEntryPoint: isEntry,
		})
		if isEntry {
			entryPoints = append(entryPoints, id)
		}
		if depth == 1 {
			report.DirectImporters++
		}
		if depth > report.MaxDepth {
			report.MaxDepth = depth
		}
	}

	sort.Slice(report.Affected, func(i, j int) bool {
		if report.Affected[i].Depth != report.Affected[j].Depth {
			return report.Affected[i].Depth < report.Affected[j].Depth
		}
		return report.Affected[i].ID < report.Affected[j].ID
	})
	sort.Strings(entryPoints)

	report.EntryPointsReached = entryPoints
	report.TotalAffected = len(depths)
	report.Scope = a.classify(report.TotalAffected, len(entryPoints) > 0)

	return report, nil
}

// classify derives the blast-radius label from the affected count and
// entry-point reachability
func (a *ImpactAnalyzer) classify(affected int, entryPointReached bool) domain.ImpactScope {
	if affected <= a.config.NarrowThreshold && !entryPointReached {
		return domain.ImpactScopeNarrow
	}
	if affected > a.config.MediumThreshold {
		return domain.ImpactScopeWide
	}
	if entryPointReached && a.config.EntrypointEscalation {
		return domain.ImpactScopeWide
	}
	return domain.ImpactScopeMedium
}

// IsEntryPoint applies the filename heuristic for runnable entry points
func (a *ImpactAnalyzer) IsEntryPoint(id string) bool {
	base := path.Base(id)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.ToLower(base)

	if a.names[base] {
		return true
	}
	// Route-like naming: users.routes.ts, router.ts, src/routes/...
	if strings.Contains(base, "route") {
		return true
	}
	dir := path.Dir(id)
	for _, part := range strings.Split(dir, "/") {
		if part == "routes" {
			return true
		}
	}
	return false
}
