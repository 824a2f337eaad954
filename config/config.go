// Package config provides configuration loading for the rdfextract command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/rdf-extract/microdata"
	"github.com/geoknoesis/rdf-extract/rdf"
	"github.com/geoknoesis/rdf-extract/registry"
)

// Config represents the complete rdfextract configuration
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// ExtractConfig configures microdata extraction
type ExtractConfig struct {
	// Base is the base IRI for documents read from stdin or without one of
	// their own (empty = derived from the file path)
	Base string `yaml:"base"`
	// Lang is the default language of text literals
	Lang string `yaml:"lang"`
	// Registry is the path of a YAML vocabulary table merged over the
	// built-in registry
	Registry string `yaml:"registry"`
	// MaxDepth bounds item nesting (default: 1024, negative = unlimited)
	MaxDepth int `yaml:"max_depth"`
	// MaxTriples bounds the triples emitted per document (0 = unlimited)
	MaxTriples int64 `yaml:"max_triples"`
	// UniqueBlankNodes prefixes blank node labels with a random per-document
	// identifier
	UniqueBlankNodes bool `yaml:"unique_blank_nodes"`
}

// OutputConfig configures the serialization of extracted triples
type OutputConfig struct {
	// Format is the output format: ntriples or jsonld
	Format string `yaml:"format"`
	// JSONLDContext is the file path of a context used to compact JSON-LD
	// output
	JSONLDContext string `yaml:"jsonld_context"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MaxDepth: microdata.DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format: string(rdf.FormatNTriples),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Extract.Base != "" && !rdf.IsAbsoluteIRI(c.Extract.Base) {
		return fmt.Errorf("extract.base must be an absolute IRI: %q", c.Extract.Base)
	}
	if c.Extract.MaxTriples < 0 {
		return fmt.Errorf("extract.max_triples must not be negative")
	}
	if _, ok := rdf.ParseFormat(c.Output.Format); !ok {
		return fmt.Errorf("output.format %q is not supported", c.Output.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Extract
	if other.Extract.Base != "" {
		c.Extract.Base = other.Extract.Base
	}
	if other.Extract.Lang != "" {
		c.Extract.Lang = other.Extract.Lang
	}
	if other.Extract.Registry != "" {
		c.Extract.Registry = other.Extract.Registry
	}
	if other.Extract.MaxDepth != 0 {
		c.Extract.MaxDepth = other.Extract.MaxDepth
	}
	if other.Extract.MaxTriples != 0 {
		c.Extract.MaxTriples = other.Extract.MaxTriples
	}
	if other.Extract.UniqueBlankNodes {
		c.Extract.UniqueBlankNodes = true
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.JSONLDContext != "" {
		c.Output.JSONLDContext = other.Output.JSONLDContext
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// Registry returns the vocabulary registry to extract with: the built-in
// table, overlaid with the configured file when there is one.
func (c *Config) Registry() (*registry.Registry, error) {
	if c.Extract.Registry == "" {
		return registry.Default(), nil
	}
	extra, err := registry.LoadFile(c.Extract.Registry)
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	reg.Merge(registry.Default())
	reg.Merge(extra)
	return reg, nil
}

// ExtractOptions converts the extraction settings into microdata options.
// base overrides the configured base when non-empty.
func (c *Config) ExtractOptions(reg *registry.Registry, base string, logger *slog.Logger) []microdata.Option {
	if base == "" {
		base = c.Extract.Base
	}
	return []microdata.Option{
		microdata.OptBase(base),
		microdata.OptDefaultLang(c.Extract.Lang),
		microdata.OptRegistry(reg),
		microdata.OptMaxDepth(c.Extract.MaxDepth),
		microdata.OptMaxTriples(c.Extract.MaxTriples),
		microdata.OptLogger(logger),
	}
}
