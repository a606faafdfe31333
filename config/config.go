// Package config loads client configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reagent-ai/reagent/githubmodels"
	"github.com/reagent-ai/reagent/llm"
)

// Config holds settings for provider construction and calls.
type Config struct {
	Provider       string   `yaml:"provider"`
	Model          string   `yaml:"model"`
	Temperature    *float64 `yaml:"temperature,omitempty"`
	MaxTokens      *int     `yaml:"max_tokens,omitempty"`
	BaseURL        string   `yaml:"base_url,omitempty"`
	TimeoutSeconds int      `yaml:"timeout_seconds,omitempty"`
	MaxRetries     *int     `yaml:"max_retries,omitempty"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Provider == "" {
		return nil, fmt.Errorf("config: provider is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("config: model is required")
	}

	return &cfg, nil
}

// Options returns llm call options derived from the config.
func (c *Config) Options() []llm.Option {
	opts := []llm.Option{
		llm.WithProvider(c.Provider),
		llm.WithModel(c.Model),
	}
	if c.Temperature != nil {
		opts = append(opts, llm.WithTemperature(*c.Temperature))
	}
	if c.MaxTokens != nil {
		opts = append(opts, llm.WithMaxTokens(*c.MaxTokens))
	}
	return opts
}

// ProviderOptions returns construction options for the githubmodels provider.
func (c *Config) ProviderOptions() []githubmodels.Option {
	var opts []githubmodels.Option
	if c.BaseURL != "" {
		opts = append(opts, githubmodels.WithBaseURL(c.BaseURL))
	}
	if c.TimeoutSeconds > 0 {
		opts = append(opts, githubmodels.WithTimeout(time.Duration(c.TimeoutSeconds)*time.Second))
	}
	if c.MaxRetries != nil {
		opts = append(opts, githubmodels.WithMaxRetries(*c.MaxRetries))
	}
	return opts
}
