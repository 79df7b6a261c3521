package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/config"
	"github.com/ludo-technologies/depscan/service"
	"github.com/spf13/cobra"
)

// rootFromArgs returns the analysis root, defaulting to the current directory
func rootFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// parseFormat validates a format flag value
func parseFormat(value string) (domain.OutputFormat, error) {
	switch value {
	case "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml":
		return domain.OutputFormatYAML, nil
	case "dot":
		return domain.OutputFormatDOT, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of text, json, yaml, dot", value)
	}
}

// loadCommandConfig loads the tool configuration for a command run
func loadCommandConfig(configPath, root string) (*config.Config, error) {
	return service.NewConfigurationLoader().LoadConfig(configPath, root)
}

// withOutputWriter runs fn against the output path, or stdout when empty
func withOutputWriter(outputPath string, fn func(*os.File) error) (err error) {
	if outputPath == "" {
		return fn(os.Stdout)
	}

	f, createErr := os.Create(outputPath)
	if createErr != nil {
		return fmt.Errorf("failed to create output file: %w", createErr)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()
	return fn(f)
}

// printWarnings prints recoverable problems to stderr for text output
func printWarnings(format domain.OutputFormat, warnings []string) {
	if format != domain.OutputFormatText {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

// boolFlagPtr returns a *bool for a flag only when it was set explicitly
func boolFlagPtr(cmd *cobra.Command, name string, value bool) *bool {
	if cmd.Flags().Changed(name) {
		return domain.BoolPtr(value)
	}
	return nil
}
