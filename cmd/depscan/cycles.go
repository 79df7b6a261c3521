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
	cyclesOutputFormat string
	cyclesOutputPath   string
	cyclesMaxShow      int
	cyclesNoProgress   bool
	cyclesConfigPath   string
)

func cyclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles [path]",
		Short: "Detect circular dependencies",
		Long: `Find all import cycles in a JavaScript/TypeScript tree, including
modules that import themselves through their own barrel files.

Examples:
  # List cycles in the current directory
  depscan cycles

  # JSON output
  depscan cycles --format json src/

  # Show every cycle instead of the first 10
  depscan cycles --max-cycles 0 src/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCycles,
	}

	cmd.Flags().StringVarP(&cyclesOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&cyclesOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().IntVar(&cyclesMaxShow, "max-cycles", 10,
		"Limit cycles listed in text output (0 = all)")
	cmd.Flags().BoolVar(&cyclesNoProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().StringVarP(&cyclesConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCycles(cmd *cobra.Command, args []string) error {
	root := rootFromArgs(args)

	format, err := parseFormat(cyclesOutputFormat)
	if err != nil {
		return err
	}
	if format == domain.OutputFormatDOT {
		return fmt.Errorf("dot output is not supported for cycles; use 'depscan graph --dot'")
	}

	cfg, err := loadCommandConfig(cyclesConfigPath, root)
	if err != nil {
		return err
	}

	pm := service.NewProgressManager(!cyclesNoProgress && format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewGraphService(cfg, pm)
	response, err := svc.Analyze(context.Background(), domain.GraphRequest{
		Root:         root,
		OutputFormat: format,
		DetectCycles: domain.BoolPtr(true),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printWarnings(format, response.Warnings)

	return withOutputWriter(cyclesOutputPath, func(w *os.File) error {
		formatter := service.NewOutputFormatter()
		formatter.MaxCyclesToShow = cyclesMaxShow
		return formatter.WriteCycles(response.Cycles, format, w)
	})
}
