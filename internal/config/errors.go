package config

import "errors"

var (
	ErrMissingAgentAPIKey   = errors.New("agent API key is required")
	ErrMissingAgentURL      = errors.New("agent base URL is required")
	ErrMissingAgentID       = errors.New("agent ID is required")
	ErrMissingWebhookSecret = errors.New("webhook secret is required")
)
