// Package config loads bmpsteg CLI configuration.
//
// Configuration comes from a single YAML file named by the --config flag or
// the BMPSTEG_CONFIG environment variable. Without either, defaults apply.
// Command-line flags override file values afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tanagraspace/bmpsteg/bmpsteg"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "BMPSTEG_CONFIG"

// Config is the CLI configuration.
type Config struct {
	// HeaderLength is the number of container bytes passed through
	// untouched before the carrier starts.
	HeaderLength int `yaml:"header_length"`

	// CheckMagic rejects containers that do not start with "BM".
	CheckMagic bool `yaml:"check_magic"`

	// TextEncoding is "codepoint" or "utf8".
	TextEncoding string `yaml:"text_encoding"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is console or json.
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HeaderLength: bmpsteg.DefaultHeaderLength,
		CheckMagic:   true,
		TextEncoding: bmpsteg.EncodingCodepoint.String(),
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. An empty path falls back to the
// EnvVar environment variable; if that is empty too, defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.HeaderLength < 0 {
		errs = append(errs, fmt.Errorf("header_length must not be negative, got %d", c.HeaderLength))
	} else if c.CheckMagic && c.HeaderLength < len(bmpsteg.Magic) {
		errs = append(errs, fmt.Errorf("header_length %d cannot hold the magic tag; disable check_magic", c.HeaderLength))
	}

	if _, err := bmpsteg.ParseTextEncoding(c.TextEncoding); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Encoding returns the parsed text encoding. Call Validate first.
func (c *Config) Encoding() bmpsteg.TextEncoding {
	enc, _ := bmpsteg.ParseTextEncoding(c.TextEncoding)
	return enc
}

// CodecOptions maps the configuration onto bmpsteg.Options.
func (c *Config) CodecOptions() bmpsteg.Options {
	opts := bmpsteg.Options{
		HeaderLength:   c.HeaderLength,
		SkipMagicCheck: !c.CheckMagic,
	}
	if c.HeaderLength == 0 {
		opts.HeaderLength = bmpsteg.NoHeader
	}
	return opts
}
