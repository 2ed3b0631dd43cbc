// Package config loads exprdoc run configuration from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ava12/exprdoc/document"
	"github.com/ava12/exprdoc/grammar"
)

// Format is config file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// Config holds the complete run configuration.
type Config struct {
	Output    OutputConfig   `toml:"output" yaml:"output"`
	Grammar   grammar.Config `toml:"grammar" yaml:"grammar"`
	Log       LogConfig      `toml:"log" yaml:"log"`
	KeepGoing bool           `toml:"keep_going" yaml:"keep_going"`
}

// OutputConfig holds document output settings.
type OutputConfig struct {
	// Path is the output file, empty means stdout.
	Path string `toml:"path" yaml:"path"`
	// Format is xml, json, or yaml; empty means format guessed from Path.
	Format string `toml:"format" yaml:"format"`
	// Display enables human-readable tree view on stderr.
	Display bool `toml:"display" yaml:"display"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
}

// Default returns configuration used when no file is given.
func Default() *Config {
	return &Config{
		Grammar: grammar.DefaultConfig(),
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// DetectFormat determines config format from file extension, TOML by default.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads configuration file. Omitted settings keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes configuration over Default and validates it.
func Parse(content []byte, format Format) (*Config, error) {
	c := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

	default:
		// toml fills existing slice items in place, so default levels would leak into omitted keys.
		c.Grammar.Levels = nil
		md, err := toml.Decode(string(content), c)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
		if !md.IsDefined("grammar", "levels") {
			c.Grammar.Levels = grammar.DefaultConfig().Levels
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Output.Format != "" {
		if _, err := document.ParseFormat(c.Output.Format); err != nil {
			return err
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if err := checkLogFormat(c.Log.Format); err != nil {
		return err
	}
	_, err := grammar.New(c.Grammar)
	return err
}

// OutputFormat returns document format: the explicit one or the one guessed from output path.
func (c *Config) OutputFormat() (document.Format, error) {
	if c.Output.Format == "" {
		return document.FormatForPath(c.Output.Path), nil
	}
	return document.ParseFormat(c.Output.Format)
}

// NewGrammar builds grammar from grammar settings.
func (c *Config) NewGrammar() (*grammar.Grammar, error) {
	return grammar.New(c.Grammar)
}

// ParseLevel converts level name to slog.Level, empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return l, nil
}

func checkLogFormat(name string) error {
	switch strings.ToLower(name) {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("unknown log format %q, expecting text or json", name)
}

// NewLogger creates logger writing to w with configured level and format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if err = checkLogFormat(c.Log.Format); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
