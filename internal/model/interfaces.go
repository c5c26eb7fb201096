package model

import "context"

// AgentResponse is the decoded body returned by the agent endpoint.
// The agent's output schema is not fixed, so it stays a loose map.
type AgentResponse map[string]any

// AgentForwarder delivers an accepted event to the downstream agent
type AgentForwarder interface {
	Forward(ctx context.Context, event *Event) (AgentResponse, error)
}
