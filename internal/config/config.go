package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/logging"
)

// Config holds all settings.
type Config struct {
	// Modifier names the key that must be held to interact with values.
	Modifier string `toml:"modifier" yaml:"modifier"`

	Rules  RulesConfig  `toml:"rules" yaml:"rules"`
	Number NumberConfig `toml:"number" yaml:"number"`
	Log    LogConfig    `toml:"log" yaml:"log"`

	// path is the file the config was loaded from, if any.
	path string
}

// RulesConfig selects the active rules.
type RulesConfig struct {
	// Builtin lists built-in rules by name, in priority order.
	Builtin []string `toml:"builtin" yaml:"builtin"`

	// Lua lists Lua rule files. Their rules follow the built-ins.
	Lua []string `toml:"lua" yaml:"lua"`
}

// NumberConfig tunes the number rule.
type NumberConfig struct {
	// Sensitivity multiplies pointer movement for number drags.
	Sensitivity float64 `toml:"sensitivity" yaml:"sensitivity"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
}

// BuiltinRules lists the names accepted in rules.builtin.
var BuiltinRules = []string{"number", "boolean", "vec2", "color", "url"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Modifier: "alt",
		Rules: RulesConfig{
			Builtin: slices.Clone(BuiltinRules),
		},
		Number: NumberConfig{Sensitivity: 1},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "scrub", "config.toml"), nil
}

// Load reads the config file at path over the defaults. Lua paths are
// resolved relative to the file. If optional is set a missing file yields
// the defaults.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.path = path

	dir := filepath.Dir(path)
	for i, p := range cfg.Rules.Lua {
		if !filepath.IsAbs(p) {
			cfg.Rules.Lua[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

// Parse decodes data over the defaults. The format is chosen by the
// extension of name. Unknown keys are rejected.
func Parse(name string, data []byte) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, tomlError(name, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: name, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return cfg, nil
}

func tomlError(name string, err error) error {
	pe := &ParseError{Path: name, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Environment variables read by ApplyEnv.
const (
	EnvModifier = "SCRUB_MODIFIER"
	EnvLogLevel = "SCRUB_LOG_LEVEL"
	EnvLogFile  = "SCRUB_LOG_FILE"
)

// ApplyEnv overrides settings from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvModifier); ok && v != "" {
		c.Modifier = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Log.File = v
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := key.ParseSelector(c.Modifier); err != nil {
		errs = append(errs, &ValidationError{Path: "modifier", Value: c.Modifier, Message: err.Error()})
	}
	for _, name := range c.Rules.Builtin {
		if !slices.Contains(BuiltinRules, name) {
			errs = append(errs, &ValidationError{Path: "rules.builtin", Value: name, Message: "unknown rule"})
		}
	}
	if len(c.Rules.Builtin) == 0 && len(c.Rules.Lua) == 0 {
		errs = append(errs, &ValidationError{Path: "rules", Value: "[]", Message: "at least one rule is required"})
	}
	if c.Number.Sensitivity <= 0 {
		errs = append(errs, &ValidationError{Path: "number.sensitivity", Value: c.Number.Sensitivity, Message: "must be positive"})
	}
	if _, ok := logging.LookupLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "unknown level"})
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, &ValidationError{Path: "log.max_size_mb", Value: c.Log.MaxSizeMB, Message: "must not be negative"})
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, &ValidationError{Path: "log.max_backups", Value: c.Log.MaxBackups, Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

// Selector returns the parsed modifier, defaulting to alt.
func (c *Config) Selector() key.Selector {
	sel, err := key.ParseSelector(c.Modifier)
	if err != nil {
		return key.SelectAlt
	}
	return sel
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// WatchPaths returns the files whose changes should trigger a reload.
func (c *Config) WatchPaths() []string {
	var out []string
	if c.path != "" {
		out = append(out, c.path)
	}
	return append(out, c.Rules.Lua...)
}
