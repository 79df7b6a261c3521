package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ludo-technologies/depscan/domain"
)

// CycleDetector finds elementary import cycles with a depth-first
// search that tracks the explicit recursion stack. Unlike an SCC
// decomposition, the path-based search reports self-loops (a module
// importing itself, directly or through its own barrel) as cycles of
// length 1.
type CycleDetector struct {
	// DFS state, reset on each detection
	onPath  map[string]bool
	visited map[string]bool
	path    []string
	cycles  [][]string
}

// NewCycleDetector creates a new CycleDetector
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// DetectCycles finds all import cycles in the forward graph
func (d *CycleDetector) DetectCycles(graph *domain.DependencyGraph) *domain.CircularDependencyAnalysis {
	if graph == nil || graph.NodeCount() == 0 {
		return &domain.CircularDependencyAnalysis{Cycles: []domain.Cycle{}}
	}

	d.onPath = make(map[string]bool)
	d.visited = make(map[string]bool)
	d.path = d.path[:0]
	d.cycles = nil

	// Every node is used once as a DFS root; fully explored nodes are
	// skipped as roots. Sorted order keeps the reported paths stable.
	for _, id := range graph.GetAllNodeIDs() {
		if !d.visited[id] {
			d.dfs(id, graph)
		}
	}

	deduped := dedupeCycles(d.cycles)

	var cycles []domain.Cycle
	modulesInCycles := make(map[string]bool)
	cycleMembership := make(map[string]int)

	for _, members := range deduped {
		cycles = append(cycles, d.buildCycle(members))
		for _, m := range members {
			modulesInCycles[m] = true
			cycleMembership[m]++
		}
	}

	var core []string
	for module, count := range cycleMembership {
		if count > 1 {
			core = append(core, module)
		}
	}
	sort.Strings(core)

	return &domain.CircularDependencyAnalysis{
		HasCircularDependencies:  len(cycles) > 0,
		TotalCycles:              len(cycles),
		TotalModulesInCycles:     len(modulesInCycles),
		Cycles:                   cycles,
		CycleBreakingSuggestions: d.suggestBreaks(deduped, graph),
		CoreInfrastructure:       core,
	}
}

// dfs explores from v, recording the path slice whenever an edge leads
// back onto the current recursion stack
func (d *CycleDetector) dfs(v string, graph *domain.DependencyGraph) {
	d.onPath[v] = true
	d.path = append(d.path, v)

	for _, w := range graph.Dependencies(v) {
		if graph.GetNode(w) == nil {
			continue
		}
		if d.onPath[w] {
			// The slice from w's first occurrence to v closes a cycle.
			// A self-loop (w == v) yields a single-element slice.
			for i, node := range d.path {
				if node == w {
					cycle := make([]string, len(d.path)-i)
					copy(cycle, d.path[i:])
					d.cycles = append(d.cycles, cycle)
					break
				}
			}
			continue
		}
		if !d.visited[w] {
			d.dfs(w, graph)
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.onPath[v] = false
	d.visited[v] = true
}

// dedupeCycles drops rotations and restarts of the same cycle by
// comparing node sets
func dedupeCycles(cycles [][]string) [][]string {
	seen := make(map[string]bool, len(cycles))
	var out [][]string
	for _, cycle := range cycles {
		key := cycleKey(cycle)
		if !seen[key] {
			seen[key] = true
			out = append(out, cycle)
		}
	}
	return out
}

// cycleKey builds an order-independent identity for a cycle
func cycleKey(cycle []string) string {
	sorted := make([]string, len(cycle))
	copy(sorted, cycle)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// buildCycle creates a Cycle record from its members in path order
func (d *CycleDetector) buildCycle(members []string) domain.Cycle {
	return domain.Cycle{
		Modules:     members,
		Size:        len(members),
		Severity:    cycleSeverity(len(members)),
		Description: describeCycle(members),
	}
}

// cycleSeverity determines severity from the cycle size
func cycleSeverity(size int) domain.CycleSeverity {
	switch {
	case size <= 2:
		return domain.CycleSeverityLow
	case size <= 4:
		return domain.CycleSeverityMedium
	case size <= 6:
		return domain.CycleSeverityHigh
	default:
		return domain.CycleSeverityCritical
	}
}

// describeCycle creates a human-readable cycle summary
func describeCycle(members []string) string {
	if len(members) == 1 {
		return fmt.Sprintf("Module imports itself: %s", moduleBaseName(members[0]))
	}

	parts := make([]string, 0, len(members)+1)
	for _, m := range members {
		parts = append(parts, moduleBaseName(m))
	}
	parts = append(parts, moduleBaseName(members[0]))
	return fmt.Sprintf("Circular dependency involving %d modules: %s",
		len(members), strings.Join(parts, " -> "))
}

// suggestBreaks generates suggestions for breaking each cycle
func (d *CycleDetector) suggestBreaks(cycles [][]string, graph *domain.DependencyGraph) []string {
	var suggestions []string

	for _, members := range cycles {
		if best := findWeakestEdge(members, graph); best != nil {
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider removing or inverting the dependency from '%s' to '%s' to break the cycle",
				moduleBaseName(best.From), moduleBaseName(best.To)))
		}
		if len(members) >= 3 {
			names := make([]string, len(members))
			for i, m := range members {
				names[i] = moduleBaseName(m)
			}
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider extracting shared declarations out of modules: %s",
				strings.Join(names, ", ")))
		}
	}

	return suggestions
}

// findWeakestEdge picks the in-cycle edge carrying the fewest bound
// symbols, the cheapest one to remove
func findWeakestEdge(members []string, graph *domain.DependencyGraph) *domain.DependencyEdge {
	inCycle := make(map[string]bool, len(members))
	for _, m := range members {
		inCycle[m] = true
	}

	var best *domain.DependencyEdge
	for _, m := range members {
		for _, edge := range graph.GetOutgoingEdges(m) {
			if !inCycle[edge.To] {
				continue
			}
			if best == nil || len(edge.Symbols) < len(best.Symbols) {
				best = edge
			}
		}
	}
	return best
}

// moduleBaseName extracts a readable module name from a path
func moduleBaseName(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
