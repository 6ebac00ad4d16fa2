// Package config provides configuration for the brep driver.
//
// Config file locations (priority order):
//  1. $BREP_CONFIG
//  2. ./brep.yaml
//  3. ~/.config/brep/config.yaml
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/topo"
)

const (
	// EnvConfigPath names the environment variable holding an explicit path.
	EnvConfigPath = "BREP_CONFIG"
	// ConfigFileName is looked up in the working directory.
	ConfigFileName = "brep.yaml"
	// ConfigDirName is the directory under ~/.config.
	ConfigDirName = "brep"

	// DefaultEvalTimeout bounds a single script evaluation.
	DefaultEvalTimeout = 5 * time.Second
)

// Config is the on-disk configuration.
type Config struct {
	Version int `yaml:"version"`

	// Tolerance is the absolute distance under which points coincide. Nil
	// means exact comparison.
	Tolerance *float64 `yaml:"tolerance,omitempty"`

	// VertexMatch is the distinctness policy: "value", "id" or "point".
	VertexMatch string `yaml:"vertex_match"`

	EvalTimeout Duration `yaml:"eval_timeout"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML parses a duration string such as "2s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns exact comparison, value matching and the default
// evaluation timeout.
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		VertexMatch: topo.MatchValue.String(),
		EvalTimeout: Duration(DefaultEvalTimeout),
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.VertexMatch == "" {
		c.VertexMatch = topo.MatchValue.String()
	}
	if c.EvalTimeout == 0 {
		c.EvalTimeout = Duration(DefaultEvalTimeout)
	}
}

// Validate rejects unknown policies, negative or non-finite tolerances and
// non-positive timeouts.
func (c *Config) Validate() error {
	var errs []error
	if _, err := topo.ParseVertexMatch(c.VertexMatch); err != nil {
		errs = append(errs, err)
	}
	if c.Tolerance != nil {
		// Written positively so NaN fails.
		if t := *c.Tolerance; !(t >= 0 && t <= math.MaxFloat64) {
			errs = append(errs, fmt.Errorf("tolerance must be a finite non-negative number, got %v", t))
		}
	}
	if c.EvalTimeout <= 0 {
		errs = append(errs, fmt.Errorf("eval_timeout must be positive, got %s", c.EvalTimeout.Duration()))
	}
	return errors.Join(errs...)
}

// Match returns the parsed vertex matching policy. Call Validate first.
func (c *Config) Match() topo.VertexMatch {
	p, _ := topo.ParseVertexMatch(c.VertexMatch)
	return p
}

// ModelTolerance returns the configured tolerance, exact when unset.
func (c *Config) ModelTolerance() geom.Tolerance[float64] {
	if c.Tolerance == nil {
		return geom.Exact[float64]()
	}
	return geom.Within(*c.Tolerance)
}

// ModelOptions returns the topology options the config describes.
func (c *Config) ModelOptions() []topo.Option[float64] {
	return []topo.Option[float64]{
		topo.WithVertexMatch[float64](c.Match()),
		topo.WithTolerance(c.ModelTolerance()),
	}
}

// FindConfigPath returns the first existing config file, or "" if none.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
