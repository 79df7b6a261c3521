package config

import "strconv"

// ProjectType represents the type of JavaScript/TypeScript project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds discovery presets for different project types
type ProjectPreset struct {
	ExcludeDirs []string
}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	NarrowThreshold    int
	MediumThreshold    int
	DeadExportSeverity string
	FailOnAnyCycle     bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	base := []string{"node_modules", ".git", "dist", "build", "out", "coverage", "vendor"}
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			ExcludeDirs: base,
		},
		ProjectTypeReact: {
			ExcludeDirs: append(append([]string{}, base...), ".next", ".turbo", "storybook-static"),
		},
		ProjectTypeVue: {
			ExcludeDirs: append(append([]string{}, base...), ".nuxt", ".output"),
		},
		ProjectTypeNodeBackend: {
			ExcludeDirs: append(append([]string{}, base...), "logs", "tmp"),
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			NarrowThreshold:    10,
			MediumThreshold:    40,
			DeadExportSeverity: "warning",
			FailOnAnyCycle:     false,
		},
		StrictnessStandard: {
			NarrowThreshold:    DefaultNarrowThreshold,
			MediumThreshold:    DefaultMediumThreshold,
			DeadExportSeverity: "warning",
			FailOnAnyCycle:     false,
		},
		StrictnessStrict: {
			NarrowThreshold:    3,
			MediumThreshold:    10,
			DeadExportSeverity: "error",
			FailOnAnyCycle:     true,
		},
	}
}

// GetFullConfigTemplate returns the documented YAML config template
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset := GetProjectPresets()[projectType]
	strict := GetStrictnessPresets()[strictness]

	return `# depscan configuration
# Documentation: https://github.com/ludo-technologies/depscan

# ==============================================================================
# FILE DISCOVERY
# ==============================================================================
discovery:
  # Recognized source extensions, in resolution priority order
  extensions: [".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"]

  # Directory names never descended into
  exclude_dirs: ` + formatYAMLList(preset.ExcludeDirs) + `

  # Honor .gitignore at the analysis root
  respect_gitignore: true

# ==============================================================================
# IMPORT/EXPORT EXTRACTION
# ==============================================================================
extractor:
  # Extraction backend: "treesitter" (parse tree) or "pattern" (regex fast path)
  engine: treesitter

# ==============================================================================
# CIRCULAR DEPENDENCY DETECTION
# ==============================================================================
cycles:
  enabled: true

  # Limit the number of cycles listed in text output (0 = all)
  max_cycles_to_show: 10

# ==============================================================================
# CHANGE IMPACT ANALYSIS
# ==============================================================================
impact:
  # A change affecting at most this many files is a narrow blast radius
  narrow_threshold: ` + strconv.Itoa(strict.NarrowThreshold) + `

  # A change affecting at most this many files is a medium blast radius
  medium_threshold: ` + strconv.Itoa(strict.MediumThreshold) + `

  # Escalate medium to wide when an entry point is affected
  entrypoint_escalation: true

  # Base filenames treated as entry points
  entry_point_names: ["index", "main", "server", "app", "cli", "worker"]

  # Bound the reverse traversal depth (0 = unlimited)
  max_depth: 0

# ==============================================================================
# DEAD EXPORT DETECTION
# ==============================================================================
dead_exports:
  enabled: true

  # Check severity for findings: "error" fails the check, "warning" reports only
  severity: ` + strict.DeadExportSeverity + `

# ==============================================================================
# OUTPUT SETTINGS
# ==============================================================================
output:
  # Output format: text, json, yaml, dot
  format: text
  show_details: false
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# depscan configuration (minimal)
# See full options: https://github.com/ludo-technologies/depscan

discovery:
  exclude_dirs: ["node_modules", ".git", "dist", "build"]

impact:
  narrow_threshold: 5
  medium_threshold: 20

dead_exports:
  severity: warning
`
}

// formatYAMLList formats a string slice as an inline YAML list
func formatYAMLList(items []string) string {
	out := "["
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += `"` + item + `"`
	}
	return out + "]"
}
