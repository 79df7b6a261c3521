package service

import (
	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/config"
)

// ConfigurationLoaderImpl loads tool configuration for the CLI layer
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path, searching near
// the analysis root when path is empty
func (c *ConfigurationLoaderImpl) LoadConfig(path string, root string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, root)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads discovered configuration, falling back to
// hardcoded defaults when discovery or parsing fails
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	if cfg, err := config.LoadConfigWithTarget("", ""); err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// OutputFormatFromConfig maps the configured format string onto the
// domain format, defaulting to text for unknown values
func (c *ConfigurationLoaderImpl) OutputFormatFromConfig(cfg *config.Config) domain.OutputFormat {
	switch cfg.Output.Format {
	case "json":
		return domain.OutputFormatJSON
	case "yaml":
		return domain.OutputFormatYAML
	case "dot":
		return domain.OutputFormatDOT
	default:
		return domain.OutputFormatText
	}
}
