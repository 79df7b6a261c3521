package analyzer

import (
	"sort"

	"github.com/ludo-technologies/depscan/domain"
)

// DeadExportDetector cross-references exported symbol names against
// every other file's imported names. Detection is conservative: when
// static extraction cannot prove a symbol unused (namespace imports,
// dynamic imports, require calls, star re-exports of the owning
// module), the symbol is never flagged.
type DeadExportDetector struct {
	// directDemand maps module ID to the set of symbol names bound by
	// static named/default imports of that module
	directDemand map[string]map[string]bool

	// reexports maps module ID to the named re-export edges forwarding
	// its symbols through other modules
	reexports map[string][]reexportEdge

	// poisoned marks modules imported via forms that may reach any
	// export without naming it
	poisoned map[string]bool
}

// reexportEdge records that barrel forwards name from some module
// under the outward name alias
type reexportEdge struct {
	barrel string
	name   string
	alias  string
}

// NewDeadExportDetector creates a new DeadExportDetector
func NewDeadExportDetector() *DeadExportDetector {
	return &DeadExportDetector{}
}

// Detect returns all exported symbols with provably zero importers
func (d *DeadExportDetector) Detect(infos map[string]*domain.ModuleInfo) *domain.DeadExportAnalysis {
	d.index(infos)

	analysis := &domain.DeadExportAnalysis{DeadExports: []domain.DeadExport{}}

	ids := make([]string, 0, len(infos))
	for id := range infos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, exp := range infos[id].Exports {
			// Pure re-exports belong to the origin module's ledger;
			// the "*" placeholder is not an enumerable symbol
			if exp.ReExport || exp.Name == "" || exp.Name == "*" {
				continue
			}
			analysis.TotalExports++
			if !d.used(id, exp.Name, make(map[string]bool)) {
				analysis.DeadExports = append(analysis.DeadExports, domain.DeadExport{
					File:        id,
					Name:        exp.Name,
					Declaration: exp.Declaration,
					Line:        exp.Line,
				})
			}
		}
	}

	for id := range d.poisoned {
		analysis.SkippedModules = append(analysis.SkippedModules, id)
	}
	sort.Strings(analysis.SkippedModules)

	return analysis
}

// index builds the demand, re-export and poison tables from resolved imports
func (d *DeadExportDetector) index(infos map[string]*domain.ModuleInfo) {
	d.directDemand = make(map[string]map[string]bool)
	d.reexports = make(map[string][]reexportEdge)
	d.poisoned = make(map[string]bool)

	for from, info := range infos {
		for _, imp := range info.Imports {
			target := imp.Resolved
			if target == "" {
				continue
			}

			switch imp.Kind {
			case domain.ImportKindNamespace, domain.ImportKindDynamic, domain.ImportKindRequire:
				// May reach any export of the target without naming it
				d.poisoned[target] = true

			case domain.ImportKindNamed, domain.ImportKindDefault:
				for _, spec := range imp.Specifiers {
					if spec.Imported == "" {
						continue
					}
					if d.directDemand[target] == nil {
						d.directDemand[target] = make(map[string]bool)
					}
					d.directDemand[target][spec.Imported] = true
				}

			case domain.ImportKindReExport:
				for _, spec := range imp.Specifiers {
					if spec.Imported == "*" {
						// export * forwards every symbol; anything
						// importing the barrel may reach them
						d.poisoned[target] = true
						continue
					}
					alias := spec.Local
					if alias == "" {
						alias = spec.Imported
					}
					d.reexports[target] = append(d.reexports[target], reexportEdge{
						barrel: from,
						name:   spec.Imported,
						alias:  alias,
					})
				}
			}
		}
	}
}

// used reports whether symbol name of module id is reachable by any
// importer. Barrel re-exports need two-hop reasoning: S re-exported
// from Y by X counts as used when anything imports S from X.
func (d *DeadExportDetector) used(id, name string, visiting map[string]bool) bool {
	if d.poisoned[id] {
		return true
	}
	if d.directDemand[id][name] {
		return true
	}

	key := id + "\x00" + name
	if visiting[key] {
		// Re-export cycle: no independent evidence of use
		return false
	}
	visiting[key] = true

	for _, edge := range d.reexports[id] {
		if edge.name != name {
			continue
		}
		if d.used(edge.barrel, edge.alias, visiting) {
			return true
		}
	}
	return false
}
