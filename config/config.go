// Package config loads the recognizer settings from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/fzipp/pl0-recognizer/plp"
	"github.com/fzipp/pl0-recognizer/pls"
)

// Config holds the complete configuration
type Config struct {
	Recognizer RecognizerConfig `toml:"recognizer" yaml:"recognizer"`
	Output     OutputConfig     `toml:"output" yaml:"output"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// RecognizerConfig holds the parser options
type RecognizerConfig struct {
	MaxDepth int  `toml:"max_depth" yaml:"max_depth"`
	Strict   bool `toml:"strict" yaml:"strict"`
	// Lang forces the language of inputs whose extension does not tell.
	Lang string `toml:"lang" yaml:"lang"`
}

// OutputConfig holds the report settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text or yaml
	Color  bool   `toml:"color" yaml:"color"`
}

// LogConfig holds the logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // text or json
}

// Format is a configuration file format
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
)

// detectFormat determines the configuration format from the file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatUnknown
}

// Default returns the configuration used without a config file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path, fills in defaults and validates the result.
// Keys the Config does not know are an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	format := detectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("config: unsupported file extension %q", filepath.Ext(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, fmt.Errorf("config: unknown key %q in %s", undec[0].String(), path)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Recognizer.MaxDepth == 0 {
		c.Recognizer.MaxDepth = plp.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	if c.Recognizer.MaxDepth <= 0 {
		return fmt.Errorf("recognizer.max_depth must be positive, got %d", c.Recognizer.MaxDepth)
	}
	if c.Recognizer.Lang != "" {
		if _, err := pls.ParseLang(c.Recognizer.Lang); err != nil {
			return fmt.Errorf("recognizer.lang: %w", err)
		}
	}
	switch c.Output.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("output.format must be text or yaml, got %q", c.Output.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Lang returns the configured language, or 0 if none is set.
func (c *Config) Lang() pls.Lang {
	lang, _ := pls.ParseLang(c.Recognizer.Lang)
	return lang
}
