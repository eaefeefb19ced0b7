// Package config loads Roundtable run settings from YAML. It exists for
// deployments that tune iteration budgets, phase tables, and logging without
// recompiling; programmatic callers can skip it and use functional options
// directly.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/evaluation"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/router"
)

// PhaseConfig declares one non-terminal phase of the routing table.
type PhaseConfig struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// LoggingConfig tunes the structured logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"` // "text" or "json"
	AddSource bool   `yaml:"add_source"`
}

// Config is the YAML-facing run configuration.
type Config struct {
	MaxIterations        int           `yaml:"max_iterations"`
	ConvergenceThreshold float64       `yaml:"convergence_threshold"`
	MaxTurnRetries       int           `yaml:"max_turn_retries"`
	Phases               []PhaseConfig `yaml:"phases"`
	Logging              LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	phases := make([]PhaseConfig, 0, len(router.DefaultPhases))
	for _, p := range router.DefaultPhases {
		phases = append(phases, PhaseConfig{Name: p.Name, Role: string(p.Role)})
	}
	return Config{
		MaxIterations:        5,
		ConvergenceThreshold: evaluation.DefaultThreshold,
		MaxTurnRetries:       1,
		Phases:               phases,
		Logging:              LoggingConfig{Level: "info", Format: "text"},
	}
}

// Parse decodes and validates a YAML payload. Omitted fields keep their
// defaults, so a file can override just the knobs it cares about.
func Parse(data []byte) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, fmt.Errorf("config: payload is empty")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML file from disk and returns the parsed configuration.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("config: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges and the phase table.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("config: max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.ConvergenceThreshold <= 0 || c.ConvergenceThreshold > 1 {
		return fmt.Errorf("config: convergence_threshold must be in (0, 1], got %g", c.ConvergenceThreshold)
	}
	if c.MaxTurnRetries < 0 {
		return fmt.Errorf("config: max_turn_retries must not be negative, got %d", c.MaxTurnRetries)
	}
	if len(c.Phases) == 0 {
		return fmt.Errorf("config: at least one phase is required")
	}
	seen := map[string]bool{}
	for i, p := range c.Phases {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("config: phase %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("config: duplicate phase name %q", name)
		}
		seen[name] = true
		role := core.Role(p.Role)
		if !role.Valid() {
			return fmt.Errorf("config: phase %q has unknown role %q", name, p.Role)
		}
		if role == core.RoleCoordinator || role == core.RoleEvaluator {
			return fmt.Errorf("config: phase %q: role %q cannot appear in the phase table", name, p.Role)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: logging format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

// Logger builds a structured logger from the logging settings.
func (lc LoggingConfig) Logger() logging.Logger {
	return logging.NewSlogLogger(logging.ParseLevel(strings.ToLower(lc.Level)), lc.Format, lc.AddSource)
}

// PhaseTable converts the configured phases into the router's phase table.
func (c Config) PhaseTable() []router.Phase {
	phases := make([]router.Phase, 0, len(c.Phases))
	for _, p := range c.Phases {
		phases = append(phases, router.Phase{Name: strings.TrimSpace(p.Name), Role: core.Role(p.Role)})
	}
	return phases
}
