// Package config holds the tool configuration, loaded from a YAML file
// with sensible defaults for every field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"arbor/internal/history"
)

// Config holds all arbor configuration.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Clone   CloneConfig   `yaml:"clone"`
}

// HistoryConfig configures the undo/redo manager.
type HistoryConfig struct {
	// Depth caps each stack.
	Depth int `yaml:"depth"`
	// Strategy selects the coalescing policy (v1..v4).
	Strategy string `yaml:"strategy"`
}

// CloneConfig configures clone placement.
type CloneConfig struct {
	// OffsetX/OffsetY displace a fresh clone from its source so the two do
	// not overlap on a diagram.
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			Depth:    history.DefaultDepth,
			Strategy: string(history.StrategyV4),
		},
		Clone: CloneConfig{
			OffsetX: 100,
			OffsetY: 100,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.History.Depth < 1 {
		return fmt.Errorf("history.depth must be at least 1, got %d", c.History.Depth)
	}
	switch history.Strategy(c.History.Strategy) {
	case history.StrategyV1, history.StrategyV2, history.StrategyV3, history.StrategyV4:
	default:
		return fmt.Errorf("history.strategy must be one of v1..v4, got %q", c.History.Strategy)
	}
	return nil
}

// Strategy returns the configured coalescing policy.
func (c *Config) Strategy() history.Strategy {
	return history.Strategy(c.History.Strategy)
}
