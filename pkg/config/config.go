// Package config loads the pipeline configuration: one explicit object
// constructed at startup and passed into each component. There is no
// process-wide mutable state; secrets come from the environment, never the
// file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CategoryConfig holds the per-category paths.
type CategoryConfig struct {
	// Template is the .docx template path for the category.
	Template string `yaml:"template"`
	// OutputDir is the category directory documents are written under.
	OutputDir string `yaml:"output_dir"`
}

// Config is the full pipeline configuration.
type Config struct {
	Workbook struct {
		// Path of the source .xlsx workbook.
		Path string `yaml:"path"`
		// Sheet holding the equipment list.
		Sheet string `yaml:"sheet"`
	} `yaml:"workbook"`

	Snapshot struct {
		// Path of the persisted baseline record set.
		Path string `yaml:"path"`
	} `yaml:"snapshot"`

	Drafting struct {
		// Model identifier passed to the drafting service.
		Model string `yaml:"model"`
		// BaseURL overrides the service endpoint.
		BaseURL string `yaml:"base_url"`
		// TimeoutSeconds bounds each drafting call; a timed-out call
		// skips that record. Zero disables the bound.
		TimeoutSeconds int `yaml:"timeout_seconds"`
		// APIKey is read from OPENAI_API_KEY, never from the file.
		APIKey string `yaml:"-"`
	} `yaml:"drafting"`

	// Categories maps category names onto their template and output
	// directory.
	Categories map[string]CategoryConfig `yaml:"categories"`

	Log struct {
		// Level is one of debug, info, warn, error.
		Level string `yaml:"level"`
	} `yaml:"log"`

	// ConfirmThreshold asks for confirmation before regenerating more than
	// this many records in one run. Zero disables the prompt.
	ConfirmThreshold int `yaml:"confirm_threshold"`
}

// Load reads a YAML configuration file, applies defaults, and overlays
// environment-carried secrets.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.defaults()
	cfg.Drafting.APIKey = os.Getenv("OPENAI_API_KEY")
	return cfg, nil
}

func (c *Config) defaults() {
	if c.Workbook.Sheet == "" {
		c.Workbook.Sheet = "cp_list"
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = filepath.Join("out", "snapshot.json")
	}
	if c.Drafting.Model == "" {
		c.Drafting.Model = "gpt-4o-mini"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Categories == nil {
		c.Categories = make(map[string]CategoryConfig)
	}
	for name, cat := range c.Categories {
		if cat.OutputDir == "" {
			cat.OutputDir = filepath.Join("out", name)
			c.Categories[name] = cat
		}
	}
}

// Validate checks the settings a run cannot start without.
func (c Config) Validate() error {
	if c.Workbook.Path == "" {
		return fmt.Errorf("config: workbook.path is required")
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("config: at least one category is required")
	}
	for name, cat := range c.Categories {
		if cat.Template == "" {
			return fmt.Errorf("config: categories.%s.template is required", name)
		}
	}
	return nil
}
