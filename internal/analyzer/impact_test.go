package analyzer

import (
	"errors"
	"testing"

	"github.com/ludo-technologies/depscan/domain"
)

func TestImpactDepthsAreShortestPaths(t *testing.T) {
	// d imports the target both directly and through c; BFS must record
	// the one-hop path
	graph := graphFromAdjacency(map[string][]string{
		"b.ts": {"target.ts"},
		"c.ts": {"b.ts"},
		"d.ts": {"target.ts", "c.ts"},
	})

	report, err := NewImpactAnalyzer(nil).Analyze(graph, "target.ts")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	want := map[string]int{"b.ts": 1, "d.ts": 1, "c.ts": 2}
	for id, depth := range want {
		if report.Depths[id] != depth {
			t.Errorf("%s: depth %d, want %d", id, report.Depths[id], depth)
		}
	}
	if report.DirectImporters != 2 {
		t.Errorf("DirectImporters = %d, want 2", report.DirectImporters)
	}
	if report.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", report.MaxDepth)
	}
}

func TestImpactTargetExcludedFromAffected(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"b.ts": {"a.ts"},
	})

	report, err := NewImpactAnalyzer(nil).Analyze(graph, "a.ts")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if _, ok := report.Depths["a.ts"]; ok {
		t.Error("target must not appear in its own affected set")
	}
	if report.TotalAffected != 1 {
		t.Errorf("TotalAffected = %d, want 1", report.TotalAffected)
	}
}

func TestImpactNoImporters(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"alone.ts": {},
	})

	report, err := NewImpactAnalyzer(nil).Analyze(graph, "alone.ts")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.TotalAffected != 0 || len(report.Affected) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if report.Scope != domain.ImpactScopeNarrow {
		t.Errorf("expected narrow scope, got %s", report.Scope)
	}
}

func TestImpactTargetNotFound(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{"a.ts": {}})

	_, err := NewImpactAnalyzer(nil).Analyze(graph, "nope.ts")
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domain.ErrCodeTargetNotFound {
		t.Errorf("expected TARGET_NOT_FOUND domain error, got %v", err)
	}
}

func TestImpactScopeNarrow(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"helper1.ts": {"lib.ts"},
		"helper2.ts": {"lib.ts"},
	})

	report, _ := NewImpactAnalyzer(nil).Analyze(graph, "lib.ts")
	if report.Scope != domain.ImpactScopeNarrow {
		t.Errorf("2 affected non-entry files should be narrow, got %s", report.Scope)
	}
}

func TestImpactEntryPointEscalation(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"src/main.ts": {"lib.ts"},
	})

	report, _ := NewImpactAnalyzer(nil).Analyze(graph, "lib.ts")
	if report.Scope != domain.ImpactScopeWide {
		t.Errorf("entry-point reach should escalate to wide, got %s", report.Scope)
	}
	if len(report.EntryPointsReached) != 1 || report.EntryPointsReached[0] != "src/main.ts" {
		t.Errorf("EntryPointsReached = %v", report.EntryPointsReached)
	}
}

func TestImpactEscalationDisabled(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"src/main.ts": {"lib.ts"},
	})

	cfg := DefaultImpactConfig()
	cfg.EntrypointEscalation = false

	report, _ := NewImpactAnalyzer(cfg).Analyze(graph, "lib.ts")
	if report.Scope != domain.ImpactScopeMedium {
		t.Errorf("with escalation off a small entry-reaching radius is medium, got %s", report.Scope)
	}
}

func TestImpactScopeWideByCount(t *testing.T) {
	adj := map[string][]string{}
	for i := 0; i < 25; i++ {
		adj["importer"+string(rune('a'+i))+".ts"] = []string{"hot.ts"}
	}
	graph := graphFromAdjacency(adj)

	report, _ := NewImpactAnalyzer(nil).Analyze(graph, "hot.ts")
	if report.Scope != domain.ImpactScopeWide {
		t.Errorf("25 affected files should be wide, got %s", report.Scope)
	}
}

func TestImpactMaxDepth(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"b.ts": {"a.ts"},
		"c.ts": {"b.ts"},
		"d.ts": {"c.ts"},
	})

	cfg := DefaultImpactConfig()
	cfg.MaxDepth = 2

	report, _ := NewImpactAnalyzer(cfg).Analyze(graph, "a.ts")

	if report.TotalAffected != 2 {
		t.Errorf("depth bound 2 should stop at c.ts, got %d affected", report.TotalAffected)
	}
	if _, ok := report.Depths["d.ts"]; ok {
		t.Error("d.ts lies beyond the depth bound")
	}
}

func TestImpactAffectedOrdering(t *testing.T) {
	graph := graphFromAdjacency(map[string][]string{
		"z.ts": {"a.ts"},
		"b.ts": {"a.ts"},
		"y.ts": {"z.ts"},
	})

	report, _ := NewImpactAnalyzer(nil).Analyze(graph, "a.ts")

	if len(report.Affected) != 3 {
		t.Fatalf("expected 3 affected, got %d", len(report.Affected))
	}
	// Depth ascending, ID ascending within a depth
	order := []string{"b.ts", "z.ts", "y.ts"}
	for i, want := range order {
		if report.Affected[i].ID != want {
			t.Errorf("Affected[%d] = %s, want %s", i, report.Affected[i].ID, want)
		}
	}
}

func TestIsEntryPoint(t *testing.T) {
	a := NewImpactAnalyzer(nil)
	cases := []struct {
		id   string
		want bool
	}{
		{"src/index.ts", true},
		{"main.ts", true},
		{"server.js", true},
		{"app.tsx", true},
		{"cli.ts", true},
		{"worker.ts", true},
		{"src/users.routes.ts", true},
		{"router.ts", true},
		{"src/routes/health.ts", true},
		{"src/utils/format.ts", false},
		{"mainframe-client.ts", false},
	}
	for _, tc := range cases {
		if got := a.IsEntryPoint(tc.id); got != tc.want {
			t.Errorf("IsEntryPoint(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
