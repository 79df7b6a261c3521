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
	impactOutputFormat string
	impactOutputPath   string
	impactRoot         string
	impactMaxDepth     int
	impactNoEscalation bool
	impactNoProgress   bool
	impactConfigPath   string
)

func impactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impact <file>",
		Short: "Compute the blast radius of changing a file",
		Long: `Traverse the reverse dependency graph from a target file and report
every module that transitively imports it, with the shortest import
distance for each. The result is classified as a narrow, medium or wide
blast radius; reaching an entry point escalates medium to wide.

Examples:
  # Who is affected if this file changes?
  depscan impact src/utils/format.ts

  # Analyze against an explicit root
  depscan impact --root ./src utils/format.ts

  # Reproduce pure count-based classification
  depscan impact --no-entrypoint-escalation src/utils/format.ts`,
		Args: cobra.ExactArgs(1),
		RunE: runImpact,
	}

	cmd.Flags().StringVarP(&impactOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&impactOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&impactRoot, "root", "r", ".",
		"Analysis root directory")
	cmd.Flags().IntVar(&impactMaxDepth, "max-depth", 0,
		"Bound the reverse traversal depth (0 = unlimited)")
	cmd.Flags().BoolVar(&impactNoEscalation, "no-entrypoint-escalation", false,
		"Classify by affected count only, without entry-point escalation")
	cmd.Flags().BoolVar(&impactNoProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().StringVarP(&impactConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runImpact(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := parseFormat(impactOutputFormat)
	if err != nil {
		return err
	}
	if format == domain.OutputFormatDOT {
		return fmt.Errorf("dot output is not supported for impact analysis")
	}

	cfg, err := loadCommandConfig(impactConfigPath, impactRoot)
	if err != nil {
		return err
	}

	pm := service.NewProgressManager(!impactNoProgress && format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewImpactService(cfg, pm)
	response, err := svc.Analyze(context.Background(), domain.ImpactRequest{
		Root:                 impactRoot,
		Target:               target,
		OutputFormat:         format,
		MaxDepth:             impactMaxDepth,
		EntrypointEscalation: boolFlagPtr(cmd, "no-entrypoint-escalation", !impactNoEscalation),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printWarnings(format, response.Warnings)

	return withOutputWriter(impactOutputPath, func(w *os.File) error {
		return service.NewOutputFormatter().WriteImpact(response, format, w)
	})
}
