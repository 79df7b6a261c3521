package analyzer

import (
	"path"
	"strings"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/resolver"
)

// GraphBuilderConfig configures the GraphBuilder
type GraphBuilderConfig struct {
	// Extensions are the recognized extensions in resolver priority order
	Extensions []string
}

// DefaultGraphBuilderConfig returns a config with the default extension order
func DefaultGraphBuilderConfig() *GraphBuilderConfig {
	return &GraphBuilderConfig{}
}

// GraphBuilder turns extraction results into a DependencyGraph
type GraphBuilder struct {
	config *GraphBuilderConfig
}

// NewGraphBuilder creates a new GraphBuilder
func NewGraphBuilder(config *GraphBuilderConfig) *GraphBuilder {
	if config == nil {
		config = DefaultGraphBuilderConfig()
	}
	return &GraphBuilder{config: config}
}

// Build resolves every relative import against the extracted file set
// and constructs the forward and reverse adjacency maps in one pass.
// Each resolved edge enters both maps through DependencyGraph.AddEdge,
// which keeps the transpose invariant by construction. Unresolved
// specifiers never enter the graph; they are kept as diagnostics.
// Resolution results are also written back into each Import.
func (b *GraphBuilder) Build(infos map[string]*domain.ModuleInfo) *domain.DependencyGraph {
	graph := domain.NewDependencyGraph()
	if len(infos) == 0 {
		return graph
	}

	ids := make([]string, 0, len(infos))
	for id := range infos {
		ids = append(ids, id)
	}
	res := resolver.New(ids, b.config.Extensions)

	for id, info := range infos {
		graph.AddNode(b.createNode(id, info))
	}

	for id, info := range infos {
		for _, imp := range info.Imports {
			if imp.Class == domain.SpecifierRelative {
				if target, ok := res.Resolve(imp.Specifier, id); ok {
					imp.Resolved = target
					graph.AddEdge(&domain.DependencyEdge{
						From:    id,
						To:      target,
						Kind:    imp.Kind,
						Symbols: localNames(imp),
						Line:    imp.Line,
					})
					continue
				}
			}
			graph.AddUnresolved(&domain.UnresolvedImport{
				From:      id,
				Specifier: imp.Specifier,
				Kind:      imp.Kind,
				Class:     imp.Class,
			})
		}
	}

	graph.UpdateNodeFlags()
	return graph
}

// Summarize computes aggregate statistics for a built graph
func (b *GraphBuilder) Summarize(graph *domain.DependencyGraph, infos map[string]*domain.ModuleInfo) *domain.GraphSummary {
	summary := &domain.GraphSummary{
		TotalModules:      graph.NodeCount(),
		TotalEdges:        graph.EdgeCount(),
		UnresolvedImports: len(graph.Unresolved),
	}

	for _, id := range graph.GetAllNodeIDs() {
		node := graph.GetNode(id)
		if node.IsRoot {
			summary.RootModules = append(summary.RootModules, id)
		}
		if node.IsLeaf {
			summary.LeafModules = append(summary.LeafModules, id)
		}
	}

	for _, info := range infos {
		summary.Extraction.TotalFiles++
		summary.Extraction.TotalImports += len(info.Imports)
		summary.Extraction.TotalExports += len(info.Exports)
		for _, imp := range info.Imports {
			switch imp.Class {
			case domain.SpecifierRelative:
				summary.Extraction.RelativeImports++
			case domain.SpecifierPackage, domain.SpecifierBuiltin:
				summary.Extraction.PackageImports++
			}
			switch imp.Kind {
			case domain.ImportKindDynamic:
				summary.Extraction.DynamicImports++
			case domain.ImportKindRequire:
				summary.Extraction.RequireImports++
			case domain.ImportKindReExport:
				summary.Extraction.ReExports++
			}
		}
	}

	return summary
}

// createNode builds a graph node from a file's extraction result
func (b *GraphBuilder) createNode(id string, info *domain.ModuleInfo) *domain.ModuleNode {
	name := path.Base(id)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}

	var exports []string
	for _, exp := range info.Exports {
		if exp.Name != "" {
			exports = append(exports, exp.Name)
		}
	}

	return &domain.ModuleNode{
		ID:      id,
		Name:    name,
		AbsPath: info.AbsPath,
		Exports: exports,
	}
}

// localNames returns the bound local names of an import
func localNames(imp *domain.Import) []string {
	var names []string
	for _, spec := range imp.Specifiers {
		if spec.Local != "" {
			names = append(names, spec.Local)
		}
	}
	return names
}
