package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extractor.Engine != "treesitter" {
		t.Errorf("default engine = %q, want treesitter", cfg.Extractor.Engine)
	}
	if !cfg.Discovery.RespectGitignore {
		t.Error("gitignore should be respected by default")
	}
	if cfg.Impact.NarrowThreshold != DefaultNarrowThreshold ||
		cfg.Impact.MediumThreshold != DefaultMediumThreshold {
		t.Errorf("default thresholds wrong: %+v", cfg.Impact)
	}
	if !cfg.Impact.EntrypointEscalation {
		t.Error("entrypoint escalation should default to on")
	}
	if cfg.DeadExports.Severity != "warning" {
		t.Errorf("default dead-export severity = %q, want warning", cfg.DeadExports.Severity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadConfigMissingPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigWithTarget("", t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if cfg.Extractor.Engine != "treesitter" {
		t.Errorf("expected defaults, got engine %q", cfg.Extractor.Engine)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "depscan.yaml")
	content := `extractor:
  engine: pattern
impact:
  narrow_threshold: 3
  medium_threshold: 10
cycles:
  max_cycles_to_show: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Extractor.Engine != "pattern" {
		t.Errorf("engine = %q, want pattern", cfg.Extractor.Engine)
	}
	if cfg.Impact.NarrowThreshold != 3 || cfg.Impact.MediumThreshold != 10 {
		t.Errorf("thresholds not loaded: %+v", cfg.Impact)
	}
	if cfg.Cycles.MaxCyclesToShow != 5 {
		t.Errorf("max_cycles_to_show = %d, want 5", cfg.Cycles.MaxCyclesToShow)
	}
	// Untouched sections keep their defaults
	if cfg.DeadExports.Severity != "warning" {
		t.Errorf("unset fields must keep defaults, got %q", cfg.DeadExports.Severity)
	}
}

func TestLoadConfigDiscoveredFromTargetDir(t *testing.T) {
	dir := t.TempDir()
	content := "extractor:\n  engine: pattern\n"
	if err := os.WriteFile(filepath.Join(dir, ".depscanrc.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	sub := filepath.Join(dir, "src", "components")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := LoadConfigWithTarget("", sub)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if cfg.Extractor.Engine != "pattern" {
		t.Error("config in an ancestor of the target dir was not found")
	}
}

func TestLoadConfigUnreadableFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"empty extensions", func(c *Config) { c.Discovery.Extensions = nil }, "extensions"},
		{"extension without dot", func(c *Config) { c.Discovery.Extensions = []string{"ts"} }, "must start with '.'"},
		{"unknown engine", func(c *Config) { c.Extractor.Engine = "babel" }, "engine"},
		{"narrow below one", func(c *Config) { c.Impact.NarrowThreshold = 0 }, "narrow_threshold"},
		{"medium not above narrow", func(c *Config) { c.Impact.MediumThreshold = c.Impact.NarrowThreshold }, "medium_threshold"},
		{"negative max depth", func(c *Config) { c.Impact.MaxDepth = -1 }, "max_depth"},
		{"unknown severity", func(c *Config) { c.DeadExports.Severity = "fatal" }, "severity"},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, "format"},
		{"negative max cycles", func(c *Config) { c.Cycles.MaxCyclesToShow = -1 }, "max_cycles_to_show"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depscan.yaml")

	cfg := DefaultConfig()
	cfg.Extractor.Engine = "pattern"
	cfg.Impact.MaxDepth = 7

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Extractor.Engine != "pattern" || loaded.Impact.MaxDepth != 7 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestConfigTemplatesAreValidYAML(t *testing.T) {
	for _, pt := range []ProjectType{ProjectTypeGeneric, ProjectTypeReact, ProjectTypeVue, ProjectTypeNodeBackend} {
		for _, s := range []Strictness{StrictnessRelaxed, StrictnessStandard, StrictnessStrict} {
			tmpl := GetFullConfigTemplate(pt, s)
			path := filepath.Join(t.TempDir(), "depscan.yaml")
			if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
				t.Fatalf("write template: %v", err)
			}
			if _, err := LoadConfig(path); err != nil {
				t.Errorf("template %s/%s does not load: %v", pt, s, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "depscan.yaml")
	if err := os.WriteFile(path, []byte(GetMinimalConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write minimal template: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Errorf("minimal template does not load: %v", err)
	}
}
