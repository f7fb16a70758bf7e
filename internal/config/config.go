// Package config loads the interpreter's runtime knobs: stack/environment
// depth limits, interactive prompt strings, and output colourisation. An
// optional YAML file supplies defaults; environment variables prefixed
// STAK_ overlay them.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds every value the interpreter's surrounding driver needs but
// the language core itself does not: resource limits mirrored from
// lang/machine and lang/env, plus REPL presentation.
type Config struct {
	StackDepth         int    `yaml:"stack_depth" env:"STACK_DEPTH"`
	EnvDepth           int    `yaml:"env_depth" env:"ENV_DEPTH"`
	Prompt             string `yaml:"prompt" env:"PROMPT"`
	ContinuationPrompt string `yaml:"continuation_prompt" env:"CONTINUATION_PROMPT"`
	Color              bool   `yaml:"color" env:"COLOR"`
}

// Default returns a Config with the same limits lang/machine.MaxStackDepth
// and lang/env.MaxDepth already enforce, so a config-less run behaves
// identically to one loaded with every field at its default.
//
// The defaults are a literal, not an envDefault tag: env.Parse applies
// envDefault whenever the matching variable is unset, which would clobber a
// value Load already took from the YAML file the moment Load calls
// env.Parse a second time for the environment-override layer.
func Default() Config {
	return Config{
		StackDepth:         2048,
		EnvDepth:           16,
		Prompt:             "> ",
		ContinuationPrompt: ".. ",
		Color:              true,
	}
}

// Load reads path (if non-empty) as a YAML file of defaults, then applies
// STAK_-prefixed environment variable overrides on top. An empty path
// skips the file layer entirely.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&c, env.Options{Prefix: "STAK_"}); err != nil {
		return Config{}, fmt.Errorf("config: environment overrides: %w", err)
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.StackDepth <= 0 {
		return fmt.Errorf("config: stack_depth must be positive, got %d", c.StackDepth)
	}
	if c.EnvDepth <= 0 {
		return fmt.Errorf("config: env_depth must be positive, got %d", c.EnvDepth)
	}
	return nil
}
