package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"

	"github.com/ghagent/relay/internal/forwarder"
	"github.com/ghagent/relay/internal/server"
)

// Config represents the main application configuration
type Config struct {
	Server server.Config    `yaml:"server"`
	Agent  forwarder.Config `yaml:"agent"`
}

// Load reads configuration from an optional YAML file and the environment.
// Required values must be present or the process refuses to start.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "read config file")
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, errm.Wrap(err, "read environment")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.Agent.APIKey == "" {
		return ErrMissingAgentAPIKey
	}
	if c.Agent.BaseURL == "" {
		return ErrMissingAgentURL
	}
	if c.Agent.AgentID == "" {
		return ErrMissingAgentID
	}
	if c.Server.WebhookSecret == "" {
		return ErrMissingWebhookSecret
	}
	return nil
}
