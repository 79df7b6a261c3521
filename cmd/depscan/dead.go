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
	deadOutputFormat string
	deadOutputPath   string
	deadNoProgress   bool
	deadConfigPath   string
)

func deadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dead [path]",
		Short: "Find exported symbols nothing imports",
		Long: `Cross-reference every exported symbol against every import site in the
tree and report exports that are provably unused.

Detection is conservative: a module imported via a namespace import,
a dynamic import() or a require() call is skipped entirely, because any
of its exports may be reached without being named. Re-exports are
followed one hop, so symbols consumed through barrel files count as
used.

Examples:
  # Scan the current directory
  depscan dead

  # JSON output for tooling
  depscan dead --format json src/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDead,
	}

	cmd.Flags().StringVarP(&deadOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&deadOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&deadNoProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().StringVarP(&deadConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runDead(cmd *cobra.Command, args []string) error {
	root := rootFromArgs(args)

	format, err := parseFormat(deadOutputFormat)
	if err != nil {
		return err
	}
	if format == domain.OutputFormatDOT {
		return fmt.Errorf("dot output is not supported for dead-export detection")
	}

	cfg, err := loadCommandConfig(deadConfigPath, root)
	if err != nil {
		return err
	}

	pm := service.NewProgressManager(!deadNoProgress && format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewDeadExportService(cfg, pm)
	response, err := svc.Analyze(context.Background(), domain.DeadExportsRequest{
		Root:         root,
		OutputFormat: format,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printWarnings(format, response.Warnings)

	return withOutputWriter(deadOutputPath, func(w *os.File) error {
		return service.NewOutputFormatter().WriteDeadExports(response, format, w)
	})
}
