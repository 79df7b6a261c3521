package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/service"
	"github.com/spf13/cobra"
)

var (
	graphOutputFormat string
	graphOutputPath   string
	graphDotFormat    bool
	graphNoCycles     bool
	graphNoLegend     bool
	graphRankDir      string
	graphExcludeDirs  []string
	graphNoProgress   bool
	graphConfigPath   string
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Build and display the module dependency graph",
		Long: `Discover every module file under a root directory, extract its imports
and exports, and build the dependency graph.

Supports multiple output formats:
  - text: Human-readable summary with per-module dependencies
  - json: JSON format for programmatic consumption
  - yaml: YAML format
  - dot:  Graphviz DOT format for visualization

Examples:
  # Analyze the current directory
  depscan graph

  # Generate DOT and render with Graphviz
  depscan graph --dot src/ > deps.dot
  dot -Tpng deps.dot -o deps.png

  # JSON for programmatic use
  depscan graph --format json src/

  # Skip cycle detection
  depscan graph --no-cycles src/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGraph,
	}

	cmd.Flags().StringVarP(&graphOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml, dot")
	cmd.Flags().StringVarP(&graphOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&graphDotFormat, "dot", false,
		"Shorthand for --format dot")
	cmd.Flags().BoolVar(&graphNoCycles, "no-cycles", false,
		"Disable cycle detection")
	cmd.Flags().BoolVar(&graphNoLegend, "no-legend", false,
		"Disable legend in DOT output")
	cmd.Flags().StringVar(&graphRankDir, "rank-dir", "TB",
		"Layout direction for DOT: TB, LR, BT, RL")
	cmd.Flags().StringSliceVar(&graphExcludeDirs, "exclude", nil,
		"Directory names to skip (overrides config)")
	cmd.Flags().BoolVar(&graphNoProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().StringVarP(&graphConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	root := rootFromArgs(args)

	format, err := parseFormat(graphOutputFormat)
	if err != nil {
		return err
	}
	if graphDotFormat {
		format = domain.OutputFormatDOT
	}

	cfg, err := loadCommandConfig(graphConfigPath, root)
	if err != nil {
		return err
	}

	pm := service.NewProgressManager(!graphNoProgress && format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewGraphService(cfg, pm)
	response, err := svc.Analyze(context.Background(), domain.GraphRequest{
		Root:         root,
		OutputFormat: format,
		DetectCycles: domain.BoolPtr(!graphNoCycles),
		ExcludeDirs:  graphExcludeDirs,
		NoProgress:   graphNoProgress,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printWarnings(format, response.Warnings)

	return withOutputWriter(graphOutputPath, func(w *os.File) error {
		if format == domain.OutputFormatDOT {
			dotConfig := service.DefaultDOTFormatterConfig()
			dotConfig.ShowLegend = !graphNoLegend
			dotConfig.ClusterCycles = !graphNoCycles
			dotConfig.RankDir = graphRankDir
			return service.NewDOTFormatter(dotConfig).WriteGraph(response, w)
		}

		formatter := service.NewOutputFormatter()
		formatter.MaxCyclesToShow = cfg.Cycles.MaxCyclesToShow
		return formatter.WriteGraph(response, format, w)
	})
}
