package domain

// CycleSeverity indicates how problematic a dependency cycle is
type CycleSeverity string

const (
	CycleSeverityLow      CycleSeverity = "low"
	CycleSeverityMedium   CycleSeverity = "medium"
	CycleSeverityHigh     CycleSeverity = "high"
	CycleSeverityCritical CycleSeverity = "critical"
)

// Cycle represents one elementary dependency cycle. Modules are listed
// in path order; the last module imports the first. A self-loop has a
// single module.
type Cycle struct {
	// Modules are the cycle members in traversal order
	Modules []string `json:"modules"`

	// Size is the number of distinct modules in the cycle
	Size int `json:"size"`

	// Severity is derived from the cycle size
	Severity CycleSeverity `json:"severity"`

	// Description is a human-readable summary
	Description string `json:"description"`
}

// CircularDependencyAnalysis aggregates all detected cycles
type CircularDependencyAnalysis struct {
	// HasCircularDependencies is true when at least one cycle exists
	HasCircularDependencies bool `json:"has_circular_dependencies"`

	// TotalCycles is the number of distinct cycles
	TotalCycles int `json:"total_cycles"`

	// TotalModulesInCycles is the number of distinct modules in any cycle
	TotalModulesInCycles int `json:"total_modules_in_cycles"`

	// Cycles are the deduplicated cycles
	Cycles []Cycle `json:"cycles"`

	// CycleBreakingSuggestions are hints for breaking the cycles
	CycleBreakingSuggestions []string `json:"cycle_breaking_suggestions,omitempty"`

	// CoreInfrastructure lists modules participating in multiple cycles
	CoreInfrastructure []string `json:"core_infrastructure,omitempty"`
}

// ImpactScope classifies the blast radius of a change
type ImpactScope string

const (
	// ImpactScopeNarrow: at most 5 affected files and no entry point reached
	ImpactScopeNarrow ImpactScope = "narrow"

	// ImpactScopeMedium: at most 20 affected files and not narrow
	ImpactScopeMedium ImpactScope = "medium"

	// ImpactScopeWide: more than 20 affected files, or an entry point reached
	ImpactScopeWide ImpactScope = "wide"
)

// AffectedModule is one module reached by reverse-dependency traversal
type AffectedModule struct {
	// ID is the affected module
	ID string `json:"id"`

	// Depth is the shortest import-hop distance back to the target
	// (1 = direct importer)
	Depth int `json:"depth"`

	// IsEntryPoint indicates the module matched the entry-point heuristic
	IsEntryPoint bool `json:"is_entry_point,omitempty"`
}

// ImpactReport is the result of blast-radius analysis for one target
type ImpactReport struct {
	// Target is the module whose change impact was analyzed
	Target string `json:"target"`

	// Affected lists every transitively affected module with its depth,
	// sorted by depth then ID
	Affected []AffectedModule `json:"affected"`

	// Depths maps affected module ID to its BFS depth
	Depths map[string]int `json:"depths"`

	// DirectImporters is the number of depth-1 modules
	DirectImporters int `json:"direct_importers"`

	// TotalAffected is the total number of affected modules
	TotalAffected int `json:"total_affected"`

	// EntryPointsReached lists affected modules matching the
	// entry-point heuristic
	EntryPointsReached []string `json:"entry_points_reached,omitempty"`

	// MaxDepth is the largest BFS depth reached
	MaxDepth int `json:"max_depth"`

	// Scope is the blast-radius classification
	Scope ImpactScope `json:"scope"`
}

// DeadExport represents an exported symbol with no importers
type DeadExport struct {
	// File is the module owning the export
	File string `json:"file"`

	// Name is the exported symbol name
	Name string `json:"name"`

	// Declaration is the declaration form, when known
	Declaration string `json:"declaration,omitempty"`

	// Line is the source line of the export
	Line int `json:"line,omitempty"`
}

// DeadExportAnalysis aggregates dead-export detection results
type DeadExportAnalysis struct {
	// DeadExports are the symbols flagged as definitely unused
	DeadExports []DeadExport `json:"dead_exports"`

	// TotalExports is the number of exported symbols examined
	TotalExports int `json:"total_exports"`

	// SkippedModules lists modules excluded from detection because they
	// are imported via namespace, dynamic or require forms
	SkippedModules []string `json:"skipped_modules,omitempty"`
}

// GraphSummary provides aggregate statistics for a built graph
type GraphSummary struct {
	// TotalModules is the number of nodes
	TotalModules int `json:"total_modules"`

	// TotalEdges is the number of resolved edges
	TotalEdges int `json:"total_edges"`

	// RootModules lists modules no other module imports
	RootModules []string `json:"root_modules,omitempty"`

	// LeafModules lists modules importing nothing
	LeafModules []string `json:"leaf_modules,omitempty"`

	// UnresolvedImports is the number of specifiers that did not
	// resolve to a discovered file
	UnresolvedImports int `json:"unresolved_imports"`

	// Extraction carries per-kind import statistics
	Extraction ExtractionSummary `json:"extraction"`
}

// GraphRequest represents a request for dependency graph analysis
type GraphRequest struct {
	// Root is the analysis root directory
	Root string `json:"root"`

	// OutputFormat specifies the output format
	OutputFormat OutputFormat `json:"output_format"`

	// DetectCycles enables circular dependency detection
	DetectCycles *bool `json:"detect_cycles,omitempty"`

	// ExcludeDirs overrides the configured directory exclusions
	ExcludeDirs []string `json:"exclude_dirs,omitempty"`

	// NoProgress disables the progress bar
	NoProgress bool `json:"no_progress,omitempty"`
}

// GraphResponse represents the response from dependency graph analysis
type GraphResponse struct {
	// Graph is the complete dependency graph
	Graph *DependencyGraph `json:"graph"`

	// Summary provides aggregate statistics
	Summary *GraphSummary `json:"summary"`

	// Cycles is the cycle analysis, when requested
	Cycles *CircularDependencyAnalysis `json:"cycles,omitempty"`

	// Warnings contains recoverable problems (unreadable files, ...)
	Warnings []string `json:"warnings,omitempty"`

	// Errors contains non-fatal errors encountered during analysis
	Errors []string `json:"errors,omitempty"`

	// GeneratedAt is when the analysis was generated
	GeneratedAt string `json:"generated_at"`

	// Version is the tool version
	Version string `json:"version"`
}

// ImpactRequest represents a request for blast-radius analysis
type ImpactRequest struct {
	// Root is the analysis root directory
	Root string `json:"root"`

	// Target is the file whose change impact is analyzed, relative to
	// the root or absolute
	Target string `json:"target"`

	// OutputFormat specifies the output format
	OutputFormat OutputFormat `json:"output_format"`

	// MaxDepth bounds the traversal depth (0 = unlimited)
	MaxDepth int `json:"max_depth,omitempty"`

	// EntrypointEscalation controls whether reaching an entry point
	// escalates a medium radius to wide
	EntrypointEscalation *bool `json:"entrypoint_escalation,omitempty"`

	// NoProgress disables the progress bar
	NoProgress bool `json:"no_progress,omitempty"`
}

// ImpactResponse represents the response from blast-radius analysis
type ImpactResponse struct {
	// Report is the impact report for the target
	Report *ImpactReport `json:"report"`

	// Warnings contains recoverable problems
	Warnings []string `json:"warnings,omitempty"`

	// Errors contains non-fatal errors
	Errors []string `json:"errors,omitempty"`

	// GeneratedAt is when the analysis was generated
	GeneratedAt string `json:"generated_at"`

	// Version is the tool version
	Version string `json:"version"`
}

// DeadExportsRequest represents a request for dead-export detection
type DeadExportsRequest struct {
	// Root is the analysis root directory
	Root string `json:"root"`

	// OutputFormat specifies the output format
	OutputFormat OutputFormat `json:"output_format"`

	// NoProgress disables the progress bar
	NoProgress bool `json:"no_progress,omitempty"`
}

// DeadExportsResponse represents the response from dead-export detection
type DeadExportsResponse struct {
	// Analysis is the dead-export analysis result
	Analysis *DeadExportAnalysis `json:"analysis"`

	// Warnings contains recoverable problems
	Warnings []string `json:"warnings,omitempty"`

	// Errors contains non-fatal errors
	Errors []string `json:"errors,omitempty"`

	// GeneratedAt is when the analysis was generated
	GeneratedAt string `json:"generated_at"`

	// Version is the tool version
	Version string `json:"version"`
}

// CheckViolation represents a single quality-gate violation
type CheckViolation struct {
	// Category is the analysis that produced the violation (cycles, dead-exports)
	Category string `json:"category"`

	// Rule is the violated rule name
	Rule string `json:"rule"`

	// Severity is "error" or "warning"
	Severity string `json:"severity"`

	// Message is a human-readable description
	Message string `json:"message"`

	// Location is file:line when applicable
	Location string `json:"location,omitempty"`
}

// CheckSummary provides aggregate statistics for a check run
type CheckSummary struct {
	FilesAnalyzed        int  `json:"files_analyzed"`
	TotalViolations      int  `json:"total_violations"`
	CyclesChecked        bool `json:"cycles_checked"`
	DeadExportsChecked   bool `json:"dead_exports_checked"`
	CircularDependencies int  `json:"circular_dependencies"`
	DeadExportFindings   int  `json:"dead_export_findings"`
}

// CheckResult represents the result of a quality-gate check
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}
