package app

import (
	"context"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/ghagent/relay/internal/config"
	"github.com/ghagent/relay/internal/forwarder"
	"github.com/ghagent/relay/internal/server"
)

// Relay is the main service that wires the webhook server to the agent forwarder
type Relay struct {
	forwarder *forwarder.Forwarder
	server    *server.Server

	cfg config.Config
	log logze.Logger
}

// New creates a new webhook relay service
func New(ctx contem.Context, cfg config.Config) (*Relay, error) {
	relay := &Relay{
		cfg: cfg,
		log: logze.With("module", "app"),
	}

	if err := relay.init(ctx); err != nil {
		return nil, errm.Wrap(err, "failed to initialize relay")
	}

	return relay, nil
}

// Start starts the webhook server
func (r *Relay) Start(ctx context.Context) error {
	if err := r.server.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start webhook server")
	}
	r.log.Info("webhook relay started", "address", r.cfg.Server.Address, "endpoint", r.cfg.Server.Endpoint)
	return nil
}

func (r *Relay) init(ctx contem.Context) (err error) {
	r.forwarder, err = forwarder.New(r.cfg.Agent)
	if err != nil {
		return errm.Wrap(err, "failed to create agent forwarder")
	}

	r.server, err = server.New(r.cfg.Server, r.forwarder)
	if err != nil {
		return errm.Wrap(err, "failed to create webhook server")
	}
	ctx.Add(r.server.Stop)

	return nil
}

// LoadConfig loads and validates the relay configuration
func LoadConfig(path string) (config.Config, error) {
	return config.Load(path)
}
