package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/depscan/internal/analyzer"
	"github.com/ludo-technologies/depscan/internal/discover"
)

// Default impact-analysis thresholds
const (
	// DefaultNarrowThreshold is the largest affected-file count still
	// classified as a narrow blast radius
	DefaultNarrowThreshold = 5

	// DefaultMediumThreshold is the largest affected-file count still
	// classified as a medium blast radius
	DefaultMediumThreshold = 20

	// DefaultMaxDepth means unlimited reverse traversal
	DefaultMaxDepth = 0
)

// Config represents the main configuration structure
type Config struct {
	// Discovery holds file discovery configuration
	Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery" yaml:"discovery"`

	// Extractor holds import/export extraction configuration
	Extractor ExtractorConfig `json:"extractor" mapstructure:"extractor" yaml:"extractor"`

	// Cycles holds circular dependency detection configuration
	Cycles CyclesConfig `json:"cycles" mapstructure:"cycles" yaml:"cycles"`

	// Impact holds blast-radius analysis configuration
	Impact ImpactConfig `json:"impact" mapstructure:"impact" yaml:"impact"`

	// DeadExports holds dead-export detection configuration
	DeadExports DeadExportsConfig `json:"deadExports" mapstructure:"dead_exports" yaml:"dead_exports"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// DiscoveryConfig holds configuration for file discovery
type DiscoveryConfig struct {
	// Extensions are the recognized file extensions in resolver priority order
	Extensions []string `json:"extensions" mapstructure:"extensions" yaml:"extensions"`

	// ExcludeDirs are directory names skipped during traversal
	ExcludeDirs []string `json:"exclude_dirs" mapstructure:"exclude_dirs" yaml:"exclude_dirs"`

	// RespectGitignore honors .gitignore at the analysis root
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// ExtractorConfig holds configuration for import/export extraction
type ExtractorConfig struct {
	// Engine selects the extraction backend: treesitter or pattern
	Engine string `json:"engine" mapstructure:"engine" yaml:"engine"`
}

// CyclesConfig holds configuration for circular dependency detection
type CyclesConfig struct {
	// Enabled controls whether cycle detection runs as part of graph analysis
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// MaxCyclesToShow limits text output (0 = show all)
	MaxCyclesToShow int `json:"max_cycles_to_show" mapstructure:"max_cycles_to_show" yaml:"max_cycles_to_show"`
}

// ImpactConfig holds configuration for blast-radius analysis
type ImpactConfig struct {
	// NarrowThreshold is the largest affected count still narrow
	NarrowThreshold int `json:"narrow_threshold" mapstructure:"narrow_threshold" yaml:"narrow_threshold"`

	// MediumThreshold is the largest affected count still medium
	MediumThreshold int `json:"medium_threshold" mapstructure:"medium_threshold" yaml:"medium_threshold"`

	// EntrypointEscalation escalates medium to wide when an entry point
	// is affected
	EntrypointEscalation bool `json:"entrypoint_escalation" mapstructure:"entrypoint_escalation" yaml:"entrypoint_escalation"`

	// EntryPointNames are base filenames treated as entry points
	EntryPointNames []string `json:"entry_point_names" mapstructure:"entry_point_names" yaml:"entry_point_names"`

	// MaxDepth bounds the reverse traversal (0 = unlimited)
	MaxDepth int `json:"max_depth" mapstructure:"max_depth" yaml:"max_depth"`
}

// DeadExportsConfig holds configuration for dead-export detection
type DeadExportsConfig struct {
	// Enabled controls whether dead-export detection runs in check mode
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Severity is the check severity assigned to findings: error or warning
	Severity string `json:"severity" mapstructure:"severity" yaml:"severity"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, dot
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show per-module breakdowns
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Extensions:       append([]string{}, discover.DefaultExtensions...),
			ExcludeDirs:      append([]string{}, discover.DefaultExcludeDirs...),
			RespectGitignore: true,
		},
		Extractor: ExtractorConfig{
			Engine: "treesitter",
		},
		Cycles: CyclesConfig{
			Enabled:         true,
			MaxCyclesToShow: 10,
		},
		Impact: ImpactConfig{
			NarrowThreshold:      DefaultNarrowThreshold,
			MediumThreshold:      DefaultMediumThreshold,
			EntrypointEscalation: true,
			EntryPointNames:      append([]string{}, analyzer.DefaultEntryPointNames...),
			MaxDepth:             DefaultMaxDepth,
		},
		DeadExports: DeadExportsConfig{
			Enabled:  true,
			Severity: "warning",
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
	}
}

// LoadConfig loads configuration from file or returns the default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When no path is given, config file discovery starts at the target
// and walks up to the filesystem root.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A fresh viper instance per load avoids shared global state
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"depscan.yaml",
		"depscan.yml",
		".depscanrc.yaml",
		".depscanrc.yml",
		".depscanrc.json",
	}

	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "depscan"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "depscan"), candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("DEPSCAN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if len(c.Discovery.Extensions) == 0 {
		return fmt.Errorf("discovery.extensions cannot be empty")
	}
	for _, ext := range c.Discovery.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("invalid discovery extension '%s', must start with '.'", ext)
		}
	}

	validEngines := map[string]bool{
		"treesitter": true,
		"pattern":    true,
	}
	if !validEngines[c.Extractor.Engine] {
		return fmt.Errorf("invalid extractor.engine '%s', must be one of: treesitter, pattern", c.Extractor.Engine)
	}

	if c.Impact.NarrowThreshold < 1 {
		return fmt.Errorf("impact.narrow_threshold must be >= 1, got %d", c.Impact.NarrowThreshold)
	}
	if c.Impact.MediumThreshold <= c.Impact.NarrowThreshold {
		return fmt.Errorf("impact.medium_threshold (%d) must be > narrow_threshold (%d)",
			c.Impact.MediumThreshold, c.Impact.NarrowThreshold)
	}
	if c.Impact.MaxDepth < 0 {
		return fmt.Errorf("impact.max_depth must be >= 0, got %d", c.Impact.MaxDepth)
	}

	validSeverities := map[string]bool{
		"error":   true,
		"warning": true,
	}
	if !validSeverities[c.DeadExports.Severity] {
		return fmt.Errorf("invalid dead_exports.severity '%s', must be one of: error, warning", c.DeadExports.Severity)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"dot":  true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, dot", c.Output.Format)
	}

	if c.Cycles.MaxCyclesToShow < 0 {
		return fmt.Errorf("cycles.max_cycles_to_show must be >= 0, got %d", c.Cycles.MaxCyclesToShow)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("discovery", config.Discovery)
	v.Set("extractor", config.Extractor)
	v.Set("cycles", config.Cycles)
	v.Set("impact", config.Impact)
	v.Set("dead_exports", config.DeadExports)
	v.Set("output", config.Output)

	return v.WriteConfig()
}
