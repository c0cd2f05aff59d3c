// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion, default value application,
// and checks that the node CLI invocation is fully described.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the command looks for a config file when --config
// is not given. A missing file at this path is not an error.
const DefaultPath = "config/checkcoinbase.yaml"

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Node     Node   `yaml:"node"`      // External node CLI invocation
	Output   Output `yaml:"output"`    // Terminal rendering options
	LogLevel string `yaml:"log_level"` // zap level: debug, info, warn, error
}

// Node describes how to invoke the external node CLI.
type Node struct {
	Command     string   `yaml:"command"`      // Executable name or path (e.g., "bitcoin-cli")
	Args        []string `yaml:"args"`         // Extra args placed before the method (e.g., "-testnet")
	HashMethod  string   `yaml:"hash_method"`  // Hash-lookup subcommand
	BlockMethod string   `yaml:"block_method"` // Block-fetch subcommand
	Verbosity   int      `yaml:"verbosity"`    // Block-fetch verbosity, 2 = decoded transactions
}

// Output controls how results are rendered.
type Output struct {
	Color   string `yaml:"color"`   // auto|always|never
	Script  bool   `yaml:"script"`  // Print coinbase script pushes
	Summary bool   `yaml:"summary"` // Print a summary table after the scan
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Node: Node{
			Command:     "bitcoin-cli",
			HashMethod:  "getblockhash",
			BlockMethod: "getblock",
			Verbosity:   2,
		},
		Output: Output{
			Color: ColorAuto,
		},
		LogLevel: "warn",
	}
}

// Validate checks the configuration. Suspicious but usable values are not
// errors; see Warnings.
func (c *Config) Validate() error {
	if c.Node.Command == "" {
		return fmt.Errorf("node.command is required")
	}
	if c.Node.HashMethod == "" {
		return fmt.Errorf("node.hash_method is required")
	}
	if c.Node.BlockMethod == "" {
		return fmt.Errorf("node.block_method is required")
	}
	if c.Node.Verbosity < 0 || c.Node.Verbosity > 3 {
		return fmt.Errorf("node.verbosity must be between 0 and 3, got %d", c.Node.Verbosity)
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of auto, always, never, got %q", c.Output.Color)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// Warnings lists values that pass Validate but will not produce useful
// output. The caller decides where to print them.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Node.Verbosity < 2 {
		warnings = append(warnings, fmt.Sprintf("node.verbosity %d does not include decoded transactions; no coinbase will be found", c.Node.Verbosity))
	}
	return warnings
}

// Load reads and parses a YAML configuration file on top of Default,
// expanding environment variables and validating the result. Fields
// absent from the file keep their default values.
//
// Environment variable expansion:
//
//	Values can use ${VAR} syntax which will be expanded using os.ExpandEnv().
//	Example: args: ["-datadir=${BITCOIN_DATADIR}"]
//
// If path is DefaultPath and the file does not exist, the defaults are
// returned. Any other missing path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
