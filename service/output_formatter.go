package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/depscan/domain"
)

// OutputFormatterImpl writes analysis responses in the supported formats
type OutputFormatterImpl struct {
	// MaxCyclesToShow limits cycle listing in text output (0 = all)
	MaxCyclesToShow int
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{MaxCyclesToShow: 10}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteGraph writes the graph response in the specified format
func (f *OutputFormatterImpl) WriteGraph(response *domain.GraphResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatDOT:
		return NewDOTFormatter(nil).WriteGraph(response, writer)
	case domain.OutputFormatText:
		return f.writeGraphText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteImpact writes the impact response in the specified format
func (f *OutputFormatterImpl) WriteImpact(response *domain.ImpactResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeImpactText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteDeadExports writes the dead-export response in the specified format
func (f *OutputFormatterImpl) WriteDeadExports(response *domain.DeadExportsResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeDeadExportsText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeGraphText writes a human-readable graph summary
func (f *OutputFormatterImpl) writeGraphText(response *domain.GraphResponse, writer io.Writer) error {
	summary := response.Summary

	fmt.Fprintln(writer, "Dependency Graph")
	fmt.Fprintln(writer, "================")
	fmt.Fprintf(writer, "Modules:            %d\n", summary.TotalModules)
	fmt.Fprintf(writer, "Edges:              %d\n", summary.TotalEdges)
	fmt.Fprintf(writer, "Unresolved imports: %d\n", summary.UnresolvedImports)
	fmt.Fprintf(writer, "Imports extracted:  %d (%d relative, %d package/builtin)\n",
		summary.Extraction.TotalImports,
		summary.Extraction.RelativeImports,
		summary.Extraction.PackageImports)
	fmt.Fprintf(writer, "Exports extracted:  %d\n", summary.Extraction.TotalExports)

	if len(summary.RootModules) > 0 {
		fmt.Fprintf(writer, "\nRoot modules (%d):\n", len(summary.RootModules))
		for _, id := range summary.RootModules {
			fmt.Fprintf(writer, "  %s\n", id)
		}
	}
	if len(summary.LeafModules) > 0 {
		fmt.Fprintf(writer, "\nLeaf modules (%d):\n", len(summary.LeafModules))
		for _, id := range summary.LeafModules {
			fmt.Fprintf(writer, "  %s\n", id)
		}
	}

	for _, id := range response.Graph.GetAllNodeIDs() {
		deps := response.Graph.Dependencies(id)
		if len(deps) == 0 {
			continue
		}
		fmt.Fprintf(writer, "\n%s\n", id)
		for _, dep := range deps {
			fmt.Fprintf(writer, "  -> %s\n", dep)
		}
	}

	if response.Cycles != nil {
		fmt.Fprintln(writer)
		f.writeCyclesText(response.Cycles, writer)
	}

	return nil
}

// writeCyclesText writes a human-readable cycle report
func (f *OutputFormatterImpl) writeCyclesText(analysis *domain.CircularDependencyAnalysis, writer io.Writer) {
	fmt.Fprintln(writer, "Circular Dependencies")
	fmt.Fprintln(writer, "=====================")

	if !analysis.HasCircularDependencies {
		fmt.Fprintln(writer, "No circular dependencies found")
		return
	}

	fmt.Fprintf(writer, "Cycles:             %d\n", analysis.TotalCycles)
	fmt.Fprintf(writer, "Modules in cycles:  %d\n", analysis.TotalModulesInCycles)
	fmt.Fprintln(writer)

	shown := analysis.Cycles
	if f.MaxCyclesToShow > 0 && len(shown) > f.MaxCyclesToShow {
		shown = shown[:f.MaxCyclesToShow]
	}
	for i, cycle := range shown {
		fmt.Fprintf(writer, "%d. [%s] %s\n", i+1, strings.ToUpper(string(cycle.Severity)), cycle.Description)
	}
	if hidden := len(analysis.Cycles) - len(shown); hidden > 0 {
		fmt.Fprintf(writer, "... and %d more cycles\n", hidden)
	}

	if len(analysis.CycleBreakingSuggestions) > 0 {
		fmt.Fprintln(writer, "\nSuggestions:")
		for _, s := range analysis.CycleBreakingSuggestions {
			fmt.Fprintf(writer, "  - %s\n", s)
		}
	}
	if len(analysis.CoreInfrastructure) > 0 {
		fmt.Fprintln(writer, "\nModules in multiple cycles:")
		for _, m := range analysis.CoreInfrastructure {
			fmt.Fprintf(writer, "  %s\n", m)
		}
	}
}

// WriteCycles writes a standalone cycle analysis in the specified format
func (f *OutputFormatterImpl) WriteCycles(analysis *domain.CircularDependencyAnalysis, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, analysis)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, analysis)
	case domain.OutputFormatText:
		f.writeCyclesText(analysis, writer)
		return nil
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeImpactText writes a human-readable blast-radius report
func (f *OutputFormatterImpl) writeImpactText(response *domain.ImpactResponse, writer io.Writer) error {
	report := response.Report

	fmt.Fprintln(writer, "Change Impact Analysis")
	fmt.Fprintln(writer, "======================")
	fmt.Fprintf(writer, "Target:           %s\n", report.Target)
	fmt.Fprintf(writer, "Blast radius:     %s\n", strings.ToUpper(string(report.Scope)))
	fmt.Fprintf(writer, "Affected modules: %d\n", report.TotalAffected)
	fmt.Fprintf(writer, "Direct importers: %d\n", report.DirectImporters)
	fmt.Fprintf(writer, "Max depth:        %d\n", report.MaxDepth)

	if len(report.EntryPointsReached) > 0 {
		fmt.Fprintf(writer, "\nEntry points reached (%d):\n", len(report.EntryPointsReached))
		for _, id := range report.EntryPointsReached {
			fmt.Fprintf(writer, "  %s\n", id)
		}
	}

	if len(report.Affected) > 0 {
		fmt.Fprintln(writer, "\nAffected modules by depth:")
		lastDepth := 0
		for _, mod := range report.Affected {
			if mod.Depth != lastDepth {
				fmt.Fprintf(writer, "  depth %d:\n", mod.Depth)
				lastDepth = mod.Depth
			}
			marker := ""
			if mod.IsEntryPoint {
				marker = "  (entry point)"
			}
			fmt.Fprintf(writer, "    %s%s\n", mod.ID, marker)
		}
	} else {
		fmt.Fprintln(writer, "\nNo modules import the target")
	}

	return nil
}

// writeDeadExportsText writes a human-readable dead-export report
func (f *OutputFormatterImpl) writeDeadExportsText(response *domain.DeadExportsResponse, writer io.Writer) error {
	analysis := response.Analysis

	fmt.Fprintln(writer, "Dead Export Detection")
	fmt.Fprintln(writer, "=====================")
	fmt.Fprintf(writer, "Exports examined: %d\n", analysis.TotalExports)
	fmt.Fprintf(writer, "Dead exports:     %d\n", len(analysis.DeadExports))

	if len(analysis.DeadExports) > 0 {
		fmt.Fprintln(writer)
		for _, dead := range analysis.DeadExports {
			location := dead.File
			if dead.Line > 0 {
				location = fmt.Sprintf("%s:%d", dead.File, dead.Line)
			}
			if dead.Declaration != "" {
				fmt.Fprintf(writer, "  %s  %s (%s)\n", location, dead.Name, dead.Declaration)
			} else {
				fmt.Fprintf(writer, "  %s  %s\n", location, dead.Name)
			}
		}
	}

	if len(analysis.SkippedModules) > 0 {
		fmt.Fprintf(writer, "\nSkipped modules (imported via namespace/dynamic/require): %d\n",
			len(analysis.SkippedModules))
		for _, id := range analysis.SkippedModules {
			fmt.Fprintf(writer, "  %s\n", id)
		}
	}

	return nil
}
