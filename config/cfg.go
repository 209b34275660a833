// Package config loads program configuration and sets up logging and
// debug reporting.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ElementConfig describes custom element of the widget bundle.
	ElementConfig struct {
		Tag        string   `yaml:"tag" validate:"required"`
		Component  string   `yaml:"component" validate:"required"`
		Styles     []string `yaml:"styles" validate:"dive,required"`
		ShadowRoot bool     `yaml:"shadow_root"`
	}

	ScopingConfig struct {
		Inspect    bool   `yaml:"inspect"`
		Charset    string `yaml:"charset"`
		OutputName string `yaml:"output_name"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Elements  []ElementConfig `yaml:"elements" validate:"unique=Tag,dive"`
		Scoping   ScopingConfig   `yaml:"scoping"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

// Element returns configuration of element with tag.
func (cfg *Config) Element(tag string) (ElementConfig, bool) {
	for _, ec := range cfg.Elements {
		if ec.Tag == tag {
			return ec, true
		}
	}
	return ElementConfig{}, false
}

// decode superimposes YAML data on cfg. Unknown keys are errors.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

func check(cfg *Config) error {
	if err := gencfg.Sanitize(cfg); err != nil {
		return fmt.Errorf("failed to sanitize configuration: %w", err)
	}
	if err := gencfg.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadConfiguration expands embedded template to get defaults, applies
// values from the file at path (if any) on top of them and validates the
// result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	defaults, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}

	cfg := &Config{}
	if err := decode(defaults, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}

	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}

	if err := check(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare returns embedded configuration template expanded with defaults.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns actual configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
