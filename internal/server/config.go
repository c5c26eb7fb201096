package server

import (
	"strconv"
	"time"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
)

const (
	defaultPort     = 8000
	defaultEndpoint = "/webhook"
	defaultTimeout  = 30 * time.Second
)

// Config represents webhook server configuration
type Config struct {
	Address  string        `yaml:"address" env:"SERVER_ADDRESS"`
	Port     int           `yaml:"port" env:"PORT"`
	Endpoint string        `yaml:"endpoint" env:"SERVER_ENDPOINT"`
	Timeout  time.Duration `yaml:"timeout" env:"SERVER_TIMEOUT"`

	WebhookSecret string `yaml:"webhook_secret" env:"GITHUB_WEBHOOK_SECRET"`
}

func (cfg *Config) PrepareAndValidate() error {
	if cfg.WebhookSecret == "" {
		return erro.New("webhook secret is required")
	}

	cfg.Port = lang.Check(cfg.Port, defaultPort)
	cfg.Address = lang.Check(cfg.Address, "0.0.0.0:"+strconv.Itoa(cfg.Port))
	cfg.Endpoint = lang.Check(cfg.Endpoint, defaultEndpoint)
	cfg.Timeout = lang.Check(cfg.Timeout, defaultTimeout)

	return nil
}
