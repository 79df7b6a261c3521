package service

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/testutil"
)

func dotResponse() *domain.GraphResponse {
	graph := domain.NewDependencyGraph()
	graph.AddNode(&domain.ModuleNode{ID: "src/a.ts", Name: "a"})
	graph.AddNode(&domain.ModuleNode{ID: "src/b.ts", Name: "b"})
	graph.AddEdge(&domain.DependencyEdge{From: "src/b.ts", To: "src/a.ts", Kind: domain.ImportKindNamed})
	graph.UpdateNodeFlags()

	return &domain.GraphResponse{
		Graph:   graph,
		Summary: &domain.GraphSummary{TotalModules: 2, TotalEdges: 1},
	}
}

func TestDOTBasicStructure(t *testing.T) {
	out, err := NewDOTFormatter(nil).FormatGraph(dotResponse())
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, out, "digraph dependencies {")
	testutil.AssertContains(t, out, "rankdir=TB;")
	testutil.AssertContains(t, out, "src__b_ts -> src__a_ts")
	if !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Error("DOT output must be closed")
	}
}

func TestDOTRootNodeHighlighted(t *testing.T) {
	out, err := NewDOTFormatter(nil).FormatGraph(dotResponse())
	testutil.AssertNoError(t, err)

	// b.ts has no importers; it is a root and gets the green fill
	testutil.AssertContains(t, out, "src__b_ts [label=\"b\", fillcolor=\"#90EE90\"")
}

func TestDOTCycleCluster(t *testing.T) {
	resp := dotResponse()
	resp.Graph.AddEdge(&domain.DependencyEdge{From: "src/a.ts", To: "src/b.ts", Kind: domain.ImportKindNamed})
	resp.Cycles = &domain.CircularDependencyAnalysis{
		HasCircularDependencies: true,
		TotalCycles:             1,
		Cycles: []domain.Cycle{{
			Modules:  []string{"src/a.ts", "src/b.ts"},
			Size:     2,
			Severity: domain.CycleSeverityLow,
		}},
	}

	out, err := NewDOTFormatter(nil).FormatGraph(resp)
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, out, "subgraph cluster_cycle_0 {")
	testutil.AssertContains(t, out, "a <-> b")
	testutil.AssertContains(t, out, "penwidth=2, color=\"#DC143C\"")
}

func TestDOTEdgeKindLabels(t *testing.T) {
	graph := domain.NewDependencyGraph()
	graph.AddNode(&domain.ModuleNode{ID: "a.ts", Name: "a"})
	graph.AddNode(&domain.ModuleNode{ID: "b.ts", Name: "b"})
	graph.AddEdge(&domain.DependencyEdge{From: "a.ts", To: "b.ts", Kind: domain.ImportKindDynamic})
	graph.UpdateNodeFlags()

	out, err := NewDOTFormatter(nil).FormatGraph(&domain.GraphResponse{
		Graph:   graph,
		Summary: &domain.GraphSummary{},
	})
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, out, "style=dashed, arrowhead=empty")
	testutil.AssertContains(t, out, "label=\"dynamic\"")
}

func TestDOTLegendToggle(t *testing.T) {
	cfg := DefaultDOTFormatterConfig()
	cfg.ShowLegend = false

	out, err := NewDOTFormatter(cfg).FormatGraph(dotResponse())
	testutil.AssertNoError(t, err)

	if strings.Contains(out, "cluster_legend") {
		t.Error("legend must be omitted when disabled")
	}
}

func TestDOTInvalidRankDir(t *testing.T) {
	cfg := DefaultDOTFormatterConfig()
	cfg.RankDir = "XX"

	_, err := NewDOTFormatter(cfg).FormatGraph(dotResponse())
	testutil.AssertError(t, err)
}

func TestDOTNilGraph(t *testing.T) {
	_, err := NewDOTFormatter(nil).FormatGraph(&domain.GraphResponse{})
	testutil.AssertError(t, err)
}

func TestEscapeDOTID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"src/a.ts", "src__a_ts"},
		{"@scope/pkg", "_at_scope__pkg"},
		{"1module.ts", "_1module_ts"},
	}
	for _, tc := range cases {
		if got := escapeDOTID(tc.in); got != tc.want {
			t.Errorf("escapeDOTID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeDOTLabel(t *testing.T) {
	if got := escapeDOTLabel(`say "hi"` + "\n"); got != `say \"hi\"\n` {
		t.Errorf("escapeDOTLabel wrong: %q", got)
	}
}
