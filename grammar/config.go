package grammar

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LevelConfig describes a precedence level.
// Fixity is one of "infix" (default), "prefix", "postfix"; Assoc is "left" (default) or "right".
type LevelConfig struct {
	Fixity  string   `yaml:"fixity" toml:"fixity" json:"fixity"`
	Assoc   string   `yaml:"assoc" toml:"assoc" json:"assoc"`
	Symbols []string `yaml:"symbols" toml:"symbols" json:"symbols"`
}

// Config is the source for New.
type Config struct {
	// Levels lists precedence levels, highest binding first.
	Levels []LevelConfig `yaml:"levels" toml:"levels" json:"levels"`

	// Unary lists operators and functions that may be encoded with one operand.
	Unary []string `yaml:"unary" toml:"unary" json:"unary"`

	// Binary lists operators and functions that may be encoded with two operands.
	Binary []string `yaml:"binary" toml:"binary" json:"binary"`

	// IntegerOperands lists unary symbols whose constant operand is rendered as an integer.
	IntegerOperands []string `yaml:"integer_operands" toml:"integer_operands" json:"integer_operands"`

	// Strict disables encoding of unregistered two-argument functions.
	Strict bool `yaml:"strict" toml:"strict" json:"strict"`

	// Fold is "right" (default) or "left".
	Fold string `yaml:"fold" toml:"fold" json:"fold"`
}

// DefaultConfig returns configuration of the standard expression grammar:
// postfix "!", right-associative "^", prefix sign, "*" and "/", "+" and "-".
func DefaultConfig() Config {
	return Config{
		Levels: []LevelConfig{
			{Fixity: "postfix", Assoc: "left", Symbols: []string{"!"}},
			{Fixity: "infix", Assoc: "right", Symbols: []string{"^"}},
			{Fixity: "prefix", Assoc: "right", Symbols: []string{"+", "-"}},
			{Fixity: "infix", Assoc: "left", Symbols: []string{"*", "/"}},
			{Fixity: "infix", Assoc: "left", Symbols: []string{"+", "-"}},
		},
		Unary:           []string{"!", "-", "exp", "log", "sqrt", "sin", "cos"},
		Binary:          []string{"+", "-", "*", "/", "^", "min", "max"},
		IntegerOperands: []string{"!"},
		Fold:            FoldRight.String(),
	}
}

// ParseConfig decodes configuration in given format ("yaml" or "toml") over DefaultConfig,
// so omitted fields keep their default values.
func ParseConfig(name, format string, content []byte) (Config, error) {
	c := DefaultConfig()
	var e error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		e = dec.Decode(&c)
		if errors.Is(e, io.EOF) {
			e = nil
		}
	case "toml":
		// toml fills existing slice items in place, so default levels would leak into omitted keys.
		c.Levels = nil
		var md toml.MetaData
		md, e = toml.Decode(string(content), &c)
		if e == nil && len(md.Undecoded()) > 0 {
			e = unknownKeysError(md.Undecoded())
		}
		if !md.IsDefined("levels") {
			c.Levels = DefaultConfig().Levels
		}
	default:
		e = unknownFormatError(format)
	}

	if e != nil {
		return c, configFileError(name, e)
	}
	return c, nil
}

// LoadConfig reads configuration file, format is chosen by file extension (.yaml, .yml, or .toml).
func LoadConfig(path string) (Config, error) {
	content, e := os.ReadFile(path)
	if e != nil {
		return DefaultConfig(), configFileError(path, e)
	}

	return ParseConfig(path, strings.TrimPrefix(filepath.Ext(path), "."), content)
}
