package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/config"
	"github.com/ludo-technologies/depscan/internal/version"
	"github.com/ludo-technologies/depscan/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries the process exit code out of the check command
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkAllowCycles     int
	checkAllowDeadExport bool
	checkSelectAnalyses  []string
	checkVerbose         bool
	checkJSON            bool
	checkConfigPath      string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Fast dependency quality gate for CI/CD pipelines",
		Long: `Run dependency checks against configurable thresholds for CI/CD
integration.

Exit codes:
  0 - All checks pass
  1 - Quality threshold(s) violated
  2 - Analysis error (root not found, config error, etc.)

Examples:
  # Fail on any cycle or dead export
  depscan check src/

  # Tolerate up to 2 known cycles
  depscan check --allow-cycles 2 src/

  # Report dead exports without failing
  depscan check --allow-dead-exports src/

  # JSON output for machine parsing
  depscan check --json src/

  # Run only cycle checks
  depscan check --select cycles src/`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&checkAllowCycles, "allow-cycles", 0,
		"Maximum allowed dependency cycles")
	cmd.Flags().BoolVar(&checkAllowDeadExport, "allow-dead-exports", false,
		"Report dead exports without failing the check")
	cmd.Flags().StringSliceVarP(&checkSelectAnalyses, "select", "s",
		[]string{"cycles", "dead-exports"},
		"Analyses to run: cycles,dead-exports")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := rootFromArgs(args)

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, root)
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	result := &domain.CheckResult{
		Passed:     true,
		Violations: []domain.CheckViolation{},
	}

	ctx := context.Background()

	if contains(checkSelectAnalyses, "cycles") {
		if err := checkCycles(ctx, root, cfg, pm, result); err != nil {
			return &CheckExitError{Code: 2, Message: err.Error()}
		}
	}

	if contains(checkSelectAnalyses, "dead-exports") && cfg.DeadExports.Enabled {
		if err := checkDeadExports(ctx, root, cfg, pm, result); err != nil {
			return &CheckExitError{Code: 2, Message: err.Error()}
		}
	}

	return outputCheckResult(result)
}

func checkCycles(ctx context.Context, root string, cfg *config.Config, pm domain.ProgressManager, result *domain.CheckResult) error {
	result.Summary.CyclesChecked = true

	svc := service.NewGraphService(cfg, pm)
	resp, err := svc.Analyze(ctx, domain.GraphRequest{
		Root:         root,
		DetectCycles: domain.BoolPtr(true),
	})
	if err != nil {
		return fmt.Errorf("dependency analysis failed: %w", err)
	}

	result.Summary.FilesAnalyzed = resp.Summary.TotalModules

	cd := resp.Cycles
	if cd == nil {
		return nil
	}
	result.Summary.CircularDependencies = cd.TotalCycles

	if cd.TotalCycles > checkAllowCycles {
		result.Passed = false
		result.Violations = append(result.Violations, domain.CheckViolation{
			Category: "cycles",
			Rule:     "max-cycles",
			Severity: "error",
			Message: fmt.Sprintf("Found %d circular dependency cycles (max: %d)",
				cd.TotalCycles, checkAllowCycles),
		})

		if checkVerbose {
			for _, cycle := range cd.Cycles {
				result.Violations = append(result.Violations, domain.CheckViolation{
					Category: "cycles",
					Rule:     "circular-dependency",
					Severity: string(cycle.Severity),
					Message:  cycle.Description,
				})
			}
		}
	}

	return nil
}

func checkDeadExports(ctx context.Context, root string, cfg *config.Config, pm domain.ProgressManager, result *domain.CheckResult) error {
	result.Summary.DeadExportsChecked = true

	svc := service.NewDeadExportService(cfg, pm)
	resp, err := svc.Analyze(ctx, domain.DeadExportsRequest{Root: root})
	if err != nil {
		return fmt.Errorf("dead export analysis failed: %w", err)
	}

	findings := len(resp.Analysis.DeadExports)
	result.Summary.DeadExportFindings = findings

	if findings == 0 {
		return nil
	}

	severity := cfg.DeadExports.Severity
	if checkAllowDeadExport {
		severity = "warning"
	} else {
		result.Passed = false
	}

	result.Violations = append(result.Violations, domain.CheckViolation{
		Category: "dead-exports",
		Rule:     "no-dead-exports",
		Severity: severity,
		Message:  fmt.Sprintf("Found %d unused exported symbols", findings),
	})

	if checkVerbose {
		for _, dead := range resp.Analysis.DeadExports {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Category: "dead-exports",
				Rule:     "unused-export",
				Severity: severity,
				Message:  fmt.Sprintf("Export '%s' has no importers", dead.Name),
				Location: fmt.Sprintf("%s:%d", dead.File, dead.Line),
			})
		}
	}

	return nil
}

func outputCheckResult(result *domain.CheckResult) error {
	result.GeneratedAt = time.Now().Format(time.RFC3339)
	result.Version = version.GetVersion()
	result.ExitCode = 0
	if !result.Passed {
		result.ExitCode = 1
	}
	result.Summary.TotalViolations = len(result.Violations)

	if checkJSON {
		return outputCheckJSON(result)
	}
	return outputCheckText(result)
}

func outputCheckText(result *domain.CheckResult) error {
	if result.Passed {
		fmt.Println("PASS: All dependency checks passed")
		if checkVerbose {
			fmt.Printf("  Modules analyzed: %d\n", result.Summary.FilesAnalyzed)
			if result.Summary.CyclesChecked {
				fmt.Printf("  Cycles: %d (max: %s)\n",
					result.Summary.CircularDependencies, strconv.Itoa(checkAllowCycles))
			}
			if result.Summary.DeadExportsChecked {
				fmt.Printf("  Dead exports: %d\n", result.Summary.DeadExportFindings)
			}
		}
		return nil
	}

	fmt.Println("FAIL: Dependency check failed")
	fmt.Printf("  Violations: %d\n", result.Summary.TotalViolations)

	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Printf("  [%s] %s: %s\n", severity, v.Category, v.Message)
		if checkVerbose && v.Location != "" {
			fmt.Printf("         at %s\n", v.Location)
		}
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *domain.CheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
