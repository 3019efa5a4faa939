// Package config provides loading and parsing of provkit.yaml configuration
// files. A configuration file captures assembly settings so pipelines can
// keep them next to their data instead of hard-coding option lists.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/provkit/provkit"
)

// Config represents a provkit.yaml configuration file.
type Config struct {
	// Attributes controls whether node attribute bags are encoded.
	// Defaults to true when omitted.
	Attributes *bool `yaml:"attributes,omitempty" json:"attributes,omitempty"`

	// Denylist lists project metadata keys excluded from the project
	// entity's attribute bag.
	Denylist []string `yaml:"denylist,omitempty" json:"denylist,omitempty"`

	// RunAssociations enables association edges from program activities to
	// the user agents their last runs executed as.
	RunAssociations bool `yaml:"run_associations,omitempty" json:"run_associations,omitempty"`

	// ProjectAttribution enables attribution edges from the project entity
	// to every registered user agent.
	ProjectAttribution bool `yaml:"project_attribution,omitempty" json:"project_attribution,omitempty"`
}

// Load reads and parses a configuration file from the given path.
// The format is detected by file extension (.json, .yaml, .yml).
// If the path is a directory, it looks for provkit.yaml or provkit.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range []string{"provkit.yaml", "provkit.yml"} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no provkit.yaml or provkit.yml found in %s", path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch ext := filepath.Ext(configPath); ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s (supported: .json, .yaml, .yml)", ext)
	}

	return &config, nil
}

// Options converts the configuration into assembler options.
func (c *Config) Options() []provkit.Option {
	var opts []provkit.Option
	if c == nil {
		return opts
	}
	if c.Attributes != nil && !*c.Attributes {
		opts = append(opts, provkit.WithoutAttributes())
	}
	if len(c.Denylist) > 0 {
		opts = append(opts, provkit.WithAttributeDenylist(c.Denylist...))
	}
	if c.RunAssociations {
		opts = append(opts, provkit.WithRunAssociations())
	}
	if c.ProjectAttribution {
		opts = append(opts, provkit.WithProjectAttribution())
	}
	return opts
}
