package forwarder

import (
	"time"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
	defaultUserAgent   = "relay/0.1.0 (https://github.com/ghagent/relay)"
)

// Config represents agent endpoint configuration
type Config struct {
	APIKey  string `yaml:"api_key" env:"AGENT_API_KEY"`
	BaseURL string `yaml:"base_url" env:"AGENT_API_URL"`
	AgentID string `yaml:"agent_id" env:"AGENT_ID"`

	MaxAttempts int           `yaml:"max_attempts" env:"AGENT_MAX_ATTEMPTS"`
	RetryDelay  time.Duration `yaml:"retry_delay" env:"AGENT_RETRY_DELAY"`
	Timeout     time.Duration `yaml:"timeout" env:"AGENT_TIMEOUT"`
	UserAgent   string        `yaml:"user_agent" env:"AGENT_USER_AGENT"`
}

func (c *Config) PrepareAndValidate() error {
	if c.APIKey == "" {
		return erro.New("agent api key is required")
	}
	if c.BaseURL == "" {
		return erro.New("agent base url is required")
	}
	if c.AgentID == "" {
		return erro.New("agent id is required")
	}

	c.MaxAttempts = lang.Check(c.MaxAttempts, defaultMaxAttempts)
	c.RetryDelay = lang.Check(c.RetryDelay, defaultRetryDelay)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}
