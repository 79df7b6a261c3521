package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/version"
)

// DOTFormatterConfig configures the DOT formatter behavior
type DOTFormatterConfig struct {
	// ClusterCycles groups cycle members in subgraphs
	ClusterCycles bool

	// ShowLegend includes a legend subgraph
	ShowLegend bool

	// RankDir is the layout direction: TB, LR, BT, RL
	RankDir string
}

// DefaultDOTFormatterConfig returns a DOTFormatterConfig with sensible defaults
func DefaultDOTFormatterConfig() *DOTFormatterConfig {
	return &DOTFormatterConfig{
		ClusterCycles: true,
		ShowLegend:    true,
		RankDir:       "TB",
	}
}

// DOTFormatter formats dependency graphs as DOT for Graphviz
type DOTFormatter struct {
	config *DOTFormatterConfig
}

// NewDOTFormatter creates a new DOT formatter with the given configuration
func NewDOTFormatter(config *DOTFormatterConfig) *DOTFormatter {
	if config == nil {
		config = DefaultDOTFormatterConfig()
	}
	return &DOTFormatter{config: config}
}

// edgeStyles maps the syntactic import form onto a visual style.
// Effectively a constant map; do not modify at runtime.
var edgeStyles = map[domain.ImportKind]struct {
	style string
	arrow string
}{
	domain.ImportKindNamed:      {style: "solid", arrow: "normal"},
	domain.ImportKindDefault:    {style: "solid", arrow: "normal"},
	domain.ImportKindNamespace:  {style: "solid", arrow: "onormal"},
	domain.ImportKindSideEffect: {style: "dotted", arrow: "normal"},
	domain.ImportKindReExport:   {style: "bold", arrow: "diamond"},
	domain.ImportKindDynamic:    {style: "dashed", arrow: "empty"},
	domain.ImportKindRequire:    {style: "dashed", arrow: "normal"},
}

var validRankDirs = map[string]bool{
	"TB": true,
	"LR": true,
	"BT": true,
	"RL": true,
}

// FormatGraph formats a graph response as DOT and returns the string
func (f *DOTFormatter) FormatGraph(response *domain.GraphResponse) (string, error) {
	var sb strings.Builder
	if err := f.WriteGraph(response, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteGraph writes a graph response as DOT to the writer
func (f *DOTFormatter) WriteGraph(response *domain.GraphResponse, writer io.Writer) error {
	if response == nil || response.Graph == nil {
		return domain.NewOutputError("nil response or graph", nil)
	}
	if !validRankDirs[f.config.RankDir] {
		return domain.NewOutputError(
			fmt.Sprintf("invalid rank direction %q: must be one of TB, LR, BT, RL", f.config.RankDir), nil)
	}

	graph := response.Graph

	fmt.Fprintf(writer, "/* depscan Dependency Graph - Generated: %s */\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(writer, "/* Version: %s */\n", version.GetVersion())
	fmt.Fprintln(writer, "digraph dependencies {")
	fmt.Fprintf(writer, "    rankdir=%s;\n", f.config.RankDir)
	fmt.Fprintln(writer, "    node [shape=box, style=filled, fillcolor=\"#E8F4FD\", fontname=\"Helvetica\"];")
	fmt.Fprintln(writer, "    edge [fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(writer)

	// Map module -> cycle index for edge highlighting and clustering
	cycleModules := make(map[string]int)
	var cycles []domain.Cycle
	if response.Cycles != nil && response.Cycles.HasCircularDependencies {
		cycles = response.Cycles.Cycles
		for i, cycle := range cycles {
			for _, mod := range cycle.Modules {
				if _, exists := cycleModules[mod]; !exists {
					cycleModules[mod] = i
				}
			}
		}
	}

	writtenNodes := make(map[string]bool)

	if f.config.ClusterCycles && len(cycles) > 0 {
		for i, cycle := range cycles {
			fmt.Fprintf(writer, "    // Cycle %d\n", i)
			fmt.Fprintf(writer, "    subgraph cluster_cycle_%d {\n", i)
			fmt.Fprintf(writer, "        label=\"Cycle: %s (%s)\";\n", f.formatCycleLabel(cycle), cycle.Severity)
			fmt.Fprintln(writer, "        style=filled;")
			fmt.Fprintln(writer, "        fillcolor=\"#FFEEEE\";")
			fmt.Fprintln(writer, "        color=\"#DC143C\";")
			fmt.Fprintln(writer)

			for _, moduleID := range cycle.Modules {
				if writtenNodes[moduleID] {
					continue
				}
				if node := graph.GetNode(moduleID); node != nil {
					f.writeNode(writer, node, "        ")
					writtenNodes[moduleID] = true
				}
			}

			fmt.Fprintln(writer, "    }")
			fmt.Fprintln(writer)
		}
	}

	fmt.Fprintln(writer, "    // Regular nodes")
	for _, nodeID := range graph.GetAllNodeIDs() {
		if writtenNodes[nodeID] {
			continue
		}
		f.writeNode(writer, graph.GetNode(nodeID), "    ")
	}
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "    // Edges")
	f.writeEdges(writer, graph, cycleModules)
	fmt.Fprintln(writer)

	if f.config.ShowLegend {
		f.writeLegend(writer)
	}

	fmt.Fprintln(writer, "}")
	return nil
}

// writeNode writes a single node in DOT format
func (f *DOTFormatter) writeNode(writer io.Writer, node *domain.ModuleNode, indent string) {
	dotID := escapeDOTID(node.ID)
	label := node.Name
	if label == "" {
		label = node.ID
	}

	var tooltip string
	if node.IsRoot {
		tooltip = "Root Module"
	} else if node.IsLeaf {
		tooltip = "Leaf Module"
	}

	fmt.Fprintf(writer, "%s%s [label=\"%s\"", indent, dotID, escapeDOTLabel(label))
	if node.IsRoot {
		fmt.Fprint(writer, ", fillcolor=\"#90EE90\"")
	}
	if tooltip != "" {
		fmt.Fprintf(writer, ", tooltip=\"%s\"", tooltip)
	}
	fmt.Fprintln(writer, "];")
}

// writeEdges writes all edges in DOT format, deduplicated per node pair
func (f *DOTFormatter) writeEdges(writer io.Writer, graph *domain.DependencyGraph, cycleModules map[string]int) {
	type edgeKey struct {
		from, to string
	}
	edges := make(map[edgeKey]*domain.DependencyEdge)
	var edgeKeys []edgeKey

	for _, nodeID := range graph.GetAllNodeIDs() {
		for _, edge := range graph.GetOutgoingEdges(nodeID) {
			key := edgeKey{edge.From, edge.To}
			if _, exists := edges[key]; !exists {
				edges[key] = edge
				edgeKeys = append(edgeKeys, key)
			}
		}
	}

	sort.Slice(edgeKeys, func(i, j int) bool {
		if edgeKeys[i].from != edgeKeys[j].from {
			return edgeKeys[i].from < edgeKeys[j].from
		}
		return edgeKeys[i].to < edgeKeys[j].to
	})

	for _, key := range edgeKeys {
		edge := edges[key]
		style := edgeStyles[edge.Kind]
		if style.style == "" {
			style = edgeStyles[domain.ImportKindNamed]
		}

		_, fromInCycle := cycleModules[edge.From]
		_, toInCycle := cycleModules[edge.To]

		fmt.Fprintf(writer, "    %s -> %s [style=%s, arrowhead=%s",
			escapeDOTID(edge.From), escapeDOTID(edge.To), style.style, style.arrow)

		if fromInCycle && toInCycle {
			fmt.Fprint(writer, ", penwidth=2, color=\"#DC143C\"")
		}
		if edge.Kind != domain.ImportKindNamed && edge.Kind != domain.ImportKindDefault {
			fmt.Fprintf(writer, ", label=\"%s\"", edge.Kind)
		}
		fmt.Fprintln(writer, "];")
	}
}

// writeLegend writes the legend subgraph
func (f *DOTFormatter) writeLegend(writer io.Writer) {
	fmt.Fprintln(writer, "    // Legend")
	fmt.Fprintln(writer, "    subgraph cluster_legend {")
	fmt.Fprintln(writer, "        label=\"Legend\";")
	fmt.Fprintln(writer, "        style=filled;")
	fmt.Fprintln(writer, "        fillcolor=\"#F5F5F5\";")
	fmt.Fprintln(writer, "        color=\"#CCCCCC\";")
	fmt.Fprintln(writer, "        fontsize=10;")
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "        legend_root [label=\"Root Module\", fillcolor=\"#90EE90\"];")
	fmt.Fprintln(writer, "        legend_module [label=\"Module\", fillcolor=\"#E8F4FD\"];")
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "        legend_static_a [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_static_b [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_static_a -> legend_static_b [style=solid, arrowhead=normal, label=\"static import\"];")
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "        legend_dynamic_a [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_dynamic_b [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_dynamic_a -> legend_dynamic_b [style=dashed, arrowhead=empty, label=\"dynamic\"];")
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "        legend_reexport_a [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_reexport_b [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_reexport_a -> legend_reexport_b [style=bold, arrowhead=diamond, label=\"re_export\"];")
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "        legend_cycle_a [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_cycle_b [label=\"\", style=invis, width=0, height=0];")
	fmt.Fprintln(writer, "        legend_cycle_a -> legend_cycle_b [penwidth=2, color=\"#DC143C\", label=\"cycle\"];")
	fmt.Fprintln(writer, "    }")
}

// formatCycleLabel creates a short label for a cycle
func (f *DOTFormatter) formatCycleLabel(cycle domain.Cycle) string {
	if len(cycle.Modules) == 0 {
		return "Empty Cycle"
	}
	if len(cycle.Modules) == 1 {
		return fmt.Sprintf("%s (self)", shortenModuleName(cycle.Modules[0]))
	}
	if len(cycle.Modules) == 2 {
		return fmt.Sprintf("%s <-> %s",
			shortenModuleName(cycle.Modules[0]),
			shortenModuleName(cycle.Modules[1]))
	}
	return fmt.Sprintf("%s -> ... (%d modules)",
		shortenModuleName(cycle.Modules[0]), len(cycle.Modules))
}

// shortenModuleName extracts a short name from a module ID
func shortenModuleName(moduleID string) string {
	parts := strings.Split(moduleID, "/")
	name := parts[len(parts)-1]
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// escapeDOTID escapes a string for use as a DOT node ID
func escapeDOTID(id string) string {
	replacer := strings.NewReplacer(
		"/", "__",
		".", "_",
		"-", "_",
		"@", "_at_",
		" ", "_",
		":", "_",
	)
	escaped := replacer.Replace(id)
	if len(escaped) > 0 && !isValidDOTIDStart(escaped[0]) {
		escaped = "_" + escaped
	}
	return escaped
}

// escapeDOTLabel escapes a string for use as a DOT label
func escapeDOTLabel(label string) string {
	// Backslash must be first to avoid double-escaping
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "",
		"\t", "\\t",
	)
	return replacer.Replace(label)
}

// isValidDOTIDStart checks if a character can start a DOT ID
func isValidDOTIDStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
