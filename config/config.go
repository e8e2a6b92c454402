// Package config loads tool configuration with the usual precedence:
// built-in defaults, then an optional YAML file, then GRIDFIX_*
// environment variables. Command-line flags are layered on top by the
// CLI itself.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gridfix/correct"
)

// Config is the full tool configuration.
type Config struct {
	Tolerance           int     `yaml:"tolerance"`
	MinLineLength       int     `yaml:"min_line_length"`
	MinOverlapRatio     float64 `yaml:"min_overlap_ratio"`
	PreserveTrees       bool    `yaml:"preserve_trees"`
	PreserveConnections bool    `yaml:"preserve_connections"`
	TreeBranchThreshold int     `yaml:"tree_branch_threshold"`

	LogLevel string `yaml:"log_level"`
	Backup   bool   `yaml:"backup"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := correct.DefaultOptions()
	return Config{
		Tolerance:           opts.Tolerance,
		MinLineLength:       opts.MinLineLength,
		MinOverlapRatio:     opts.MinOverlapRatio,
		PreserveTrees:       opts.PreserveTrees,
		PreserveConnections: opts.PreserveConnections,
		TreeBranchThreshold: opts.TreeBranchThreshold,
		LogLevel:            "warn",
		Backup:              true,
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty, an error when missing), and finally the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from GRIDFIX_* variables.
func (c *Config) applyEnv() error {
	if err := envInt("GRIDFIX_TOLERANCE", &c.Tolerance); err != nil {
		return err
	}
	if err := envInt("GRIDFIX_MIN_LINE_LENGTH", &c.MinLineLength); err != nil {
		return err
	}
	if err := envFloat("GRIDFIX_MIN_OVERLAP_RATIO", &c.MinOverlapRatio); err != nil {
		return err
	}
	if err := envBool("GRIDFIX_PRESERVE_TREES", &c.PreserveTrees); err != nil {
		return err
	}
	if err := envBool("GRIDFIX_PRESERVE_CONNECTIONS", &c.PreserveConnections); err != nil {
		return err
	}
	if err := envInt("GRIDFIX_TREE_BRANCH_THRESHOLD", &c.TreeBranchThreshold); err != nil {
		return err
	}
	if err := envBool("GRIDFIX_BACKUP", &c.Backup); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("GRIDFIX_LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

// Validate rejects values outside their working ranges.
func (c Config) Validate() error {
	if c.Tolerance < 0 || c.Tolerance > 10 {
		return fmt.Errorf("tolerance %d out of range 0..10", c.Tolerance)
	}
	if c.MinLineLength < 1 {
		return fmt.Errorf("min_line_length %d must be at least 1", c.MinLineLength)
	}
	if c.MinOverlapRatio < 0 || c.MinOverlapRatio > 1 {
		return fmt.Errorf("min_overlap_ratio %g out of range 0..1", c.MinOverlapRatio)
	}
	if c.TreeBranchThreshold < 1 {
		return fmt.Errorf("tree_branch_threshold %d must be at least 1", c.TreeBranchThreshold)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be debug, info, warn, or error", c.LogLevel)
	}
	return nil
}

// Options converts the configuration into pipeline options.
func (c Config) Options() correct.Options {
	return correct.Options{
		Tolerance:           c.Tolerance,
		MinLineLength:       c.MinLineLength,
		MinOverlapRatio:     c.MinOverlapRatio,
		PreserveTrees:       c.PreserveTrees,
		PreserveConnections: c.PreserveConnections,
		TreeBranchThreshold: c.TreeBranchThreshold,
	}
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", name, v)
	}
	*dst = n
	return nil
}

func envFloat(name string, dst *float64) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, v)
	}
	*dst = f
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", name, v)
	}
	*dst = b
	return nil
}
