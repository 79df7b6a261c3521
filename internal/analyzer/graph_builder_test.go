package analyzer

import (
	"testing"

	"github.com/ludo-technologies/depscan/domain"
)

// moduleWithImports builds a minimal extraction result for tests
func moduleWithImports(specifiers ...string) *domain.ModuleInfo {
	info := &domain.ModuleInfo{}
	for _, spec := range specifiers {
		class := domain.SpecifierPackage
		if len(spec) > 0 && spec[0] == '.' {
			class = domain.SpecifierRelative
		}
		info.Imports = append(info.Imports, &domain.Import{
			Specifier: spec,
			Kind:      domain.ImportKindNamed,
			Class:     class,
		})
	}
	return info
}

func TestBuildEdges(t *testing.T) {
	infos := map[string]*domain.ModuleInfo{
		"src/a.ts": moduleWithImports(),
		"src/b.ts": moduleWithImports("./a"),
		"src/c.ts": moduleWithImports("./b"),
	}

	graph := NewGraphBuilder(nil).Build(infos)

	if graph.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", graph.NodeCount())
	}
	if graph.EdgeCount() != 2 {
		t.Fatalf("expected 2 edges, got %d", graph.EdgeCount())
	}

	deps := graph.Dependencies("src/b.ts")
	if len(deps) != 1 || deps[0] != "src/a.ts" {
		t.Errorf("expected b -> a, got %v", deps)
	}
}

func TestBuildTransposeInvariant(t *testing.T) {
	infos := map[string]*domain.ModuleInfo{
		"a.ts":      moduleWithImports("./shared"),
		"b.ts":      moduleWithImports("./shared", "./a.ts"),
		"shared.ts": moduleWithImports(),
	}

	graph := NewGraphBuilder(nil).Build(infos)

	forward := map[*domain.DependencyEdge]bool{}
	for _, edges := range graph.Edges {
		for _, e := range edges {
			forward[e] = true
		}
	}
	reverseCount := 0
	for to, edges := range graph.ReverseEdges {
		for _, e := range edges {
			reverseCount++
			if !forward[e] {
				t.Errorf("reverse edge %s -> %s has no forward counterpart", e.From, e.To)
			}
			if e.To != to {
				t.Errorf("edge %s -> %s filed under reverse key %s", e.From, e.To, to)
			}
		}
	}
	if reverseCount != len(forward) {
		t.Errorf("forward has %d edges, reverse has %d", len(forward), reverseCount)
	}
}

func TestBuildRecordsUnresolved(t *testing.T) {
	infos := map[string]*domain.ModuleInfo{
		"a.ts": moduleWithImports("react", "./missing"),
	}

	graph := NewGraphBuilder(nil).Build(infos)

	if graph.EdgeCount() != 0 {
		t.Errorf("unresolved imports must not create edges, got %d", graph.EdgeCount())
	}
	if len(graph.Unresolved) != 2 {
		t.Fatalf("expected 2 unresolved imports, got %d", len(graph.Unresolved))
	}
}

func TestBuildWritesResolvedBack(t *testing.T) {
	infos := map[string]*domain.ModuleInfo{
		"a.ts": moduleWithImports(),
		"b.ts": moduleWithImports("./a"),
	}

	NewGraphBuilder(nil).Build(infos)

	imp := infos["b.ts"].Imports[0]
	if imp.Resolved != "a.ts" {
		t.Errorf("expected Resolved to be written back, got %q", imp.Resolved)
	}
}

func TestBuildNodeFlags(t *testing.T) {
	infos := map[string]*domain.ModuleInfo{
		"leaf.ts":   moduleWithImports(),
		"middle.ts": moduleWithImports("./leaf"),
		"root.ts":   moduleWithImports("./middle"),
	}

	graph := NewGraphBuilder(nil).Build(infos)

	cases := []struct {
		id             string
		isRoot, isLeaf bool
	}{
		{"root.ts", true, false},
		{"middle.ts", false, false},
		{"leaf.ts", false, true},
	}
	for _, tc := range cases {
		node := graph.GetNode(tc.id)
		if node == nil {
			t.Fatalf("missing node %s", tc.id)
		}
		if node.IsRoot != tc.isRoot || node.IsLeaf != tc.isLeaf {
			t.Errorf("%s: IsRoot=%v IsLeaf=%v, want IsRoot=%v IsLeaf=%v",
				tc.id, node.IsRoot, node.IsLeaf, tc.isRoot, tc.isLeaf)
		}
	}
}

func TestBuildIsolatedNodeIsBothRootAndLeaf(t *testing.T) {
	graph := NewGraphBuilder(nil).Build(map[string]*domain.ModuleInfo{
		"lonely.ts": moduleWithImports(),
	})

	node := graph.GetNode("lonely.ts")
	if !node.IsRoot || !node.IsLeaf {
		t.Errorf("isolated node should be both root and leaf, got %+v", node)
	}
}

func TestSummarize(t *testing.T) {
	dynamic := &domain.Import{Specifier: "./x", Kind: domain.ImportKindDynamic, Class: domain.SpecifierRelative}
	infos := map[string]*domain.ModuleInfo{
		"x.ts": {Exports: []*domain.Export{{Name: "x"}}},
		"y.ts": {Imports: []*domain.Import{
			{Specifier: "./x", Kind: domain.ImportKindNamed, Class: domain.SpecifierRelative},
			{Specifier: "react", Kind: domain.ImportKindDefault, Class: domain.SpecifierPackage},
			dynamic,
		}},
	}

	b := NewGraphBuilder(nil)
	graph := b.Build(infos)
	summary := b.Summarize(graph, infos)

	if summary.TotalModules != 2 {
		t.Errorf("TotalModules = %d, want 2", summary.TotalModules)
	}
	if summary.TotalEdges != 2 {
		t.Errorf("TotalEdges = %d, want 2", summary.TotalEdges)
	}
	if summary.UnresolvedImports != 1 {
		t.Errorf("UnresolvedImports = %d, want 1", summary.UnresolvedImports)
	}
	if summary.Extraction.RelativeImports != 2 || summary.Extraction.PackageImports != 1 {
		t.Errorf("relative/package counts wrong: %+v", summary.Extraction)
	}
	if summary.Extraction.DynamicImports != 1 {
		t.Errorf("DynamicImports = %d, want 1", summary.Extraction.DynamicImports)
	}
	if len(summary.RootModules) != 1 || summary.RootModules[0] != "y.ts" {
		t.Errorf("RootModules = %v, want [y.ts]", summary.RootModules)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	graph := NewGraphBuilder(nil).Build(nil)
	if graph.NodeCount() != 0 || graph.EdgeCount() != 0 {
		t.Error("empty input should produce empty graph")
	}
}
