package engine

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/cilisp/pkg/pool"
)

// Config holds the settings for an evaluation session.
type Config struct {
	Format     string `yaml:"format" json:"format"` // "text" or "json"
	Strict     bool   `yaml:"strict" json:"strict"`
	Extensions bool   `yaml:"extensions" json:"extensions"`
	LaTeX      bool   `yaml:"latex" json:"latex"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`
	Seed       int64  `yaml:"seed" json:"seed"`
	Pool       string `yaml:"pool" json:"pool"`
	MaxDepth   int    `yaml:"max_depth" json:"max_depth"`
	Workers    int    `yaml:"workers" json:"workers"`
	History    string `yaml:"history" json:"-"`
	Prompt     string `yaml:"prompt" json:"-"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format:   "text",
		Pool:     "kitchensink",
		MaxDepth: 4,
		Seed:     0, // 0 = random
		Workers:  runtime.NumCPU(),
		Prompt:   "> ",
	}
}

// LoadConfig overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values; unknown keys are an error.
func LoadConfig(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown format %q (want text or json)", c.Format)
	}
	if _, err := pool.Get(c.Pool); err != nil {
		return fmt.Errorf("config: %w (available: %v)", err, pool.Names())
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("config: max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}
