// Package config provides planner and agent settings loaded from environment
// variables. Transport-level settings (ports, addresses) stay on cobra flags
// in cmd; this package covers the knobs that follow the process everywhere.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds workdeck agent configuration.
type Config struct {
	// AnthropicAPIKey authenticates planner calls. Required for run/plan
	// commands, unused by serve without a planner.
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`

	// Model is the Claude model identifier the planner uses.
	Model string `envconfig:"WORKDECK_MODEL" default:"claude-sonnet-4-5"`

	// MaxTokens caps each planner completion.
	MaxTokens int `envconfig:"WORKDECK_MAX_TOKENS" default:"4096"`

	// MaxTurns bounds the planner tool-use loop per objective.
	MaxTurns int `envconfig:"WORKDECK_MAX_TURNS" default:"8"`

	// Temperature is passed to the model when positive.
	Temperature float64 `envconfig:"WORKDECK_TEMPERATURE" default:"0"`

	// Account selects the Google account capabilities act as.
	Account string `envconfig:"WORKDECK_ACCOUNT" default:"default"`

	// StrictValidation rejects unknown input fields instead of dropping
	// them.
	StrictValidation bool `envconfig:"WORKDECK_STRICT_VALIDATION" default:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &c, nil
}

// ValidateForPlanner checks the settings the planner loop depends on.
func (c *Config) ValidateForPlanner() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("WORKDECK_MAX_TURNS must be positive")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("WORKDECK_MAX_TOKENS must be positive")
	}
	return nil
}
