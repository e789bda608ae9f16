// Package config loads the playground's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/logging"
)

// DefaultCommand is the interpreter run when none is configured.
const DefaultCommand = "espresso"

// Config is the top-level configuration document.
type Config struct {
	// Catalog is a path to a lesson catalog. Empty selects the embedded one.
	Catalog string `yaml:"catalog"`

	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
}

// EngineConfig selects the interpreter process.
type EngineConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`

	// File receives log output. Empty means stderr.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Engine: EngineConfig{Command: DefaultCommand},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML document over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: %v", execution.ErrConfiguration, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Engine.Command) == "" {
		problems = append(problems, "engine.command is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not one of text, json", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", execution.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// Logging converts the log section into a logging.Config writing to out.
func (c *Config) Logging(out io.Writer) logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.Config{Level: level, Format: c.Log.Format, Output: out}
}
