package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/depscan/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "depscan",
		Short: "depscan - JavaScript/TypeScript dependency graph analyzer",
		Long: `depscan builds the module dependency graph of a JavaScript/TypeScript
tree and answers structural questions about it: which modules depend on
which, where the import cycles are, what the blast radius of changing a
file is, and which exported symbols nothing imports.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(graphCmd())
	rootCmd.AddCommand(cyclesCmd())
	rootCmd.AddCommand(impactCmd())
	rootCmd.AddCommand(deadCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Check command signals its pass/fail status through the exit code
		if exitErr, ok := err.(*CheckExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("depscan version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
