package server

import (
	"context"
	"net/http"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"

	"github.com/ghagent/relay/internal/model"
	"github.com/ghagent/relay/internal/webhook"
)

const (
	signatureHeader = "X-Hub-Signature-256"
	healthEndpoint  = "/health"
)

// Server handles webhook requests from GitHub and relays accepted events
// to the agent forwarder
type Server struct {
	forwarder model.AgentForwarder
	config    Config
	log       logze.Logger
	server    *servex.Server
}

// New creates a new webhook server
func New(cfg Config, forwarder model.AgentForwarder) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithDefaultMetrics(),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	s := &Server{
		forwarder: forwarder,
		config:    cfg,
		log:       log,
		server:    server,
	}

	server.HandleFunc(cfg.Endpoint, s.handleWebhook)
	server.HandleFunc(healthEndpoint, s.handleHealth)

	return s, nil
}

// Start starts the webhook server
func (s *Server) Start(ctx context.Context) error {
	return s.server.StartHTTP(s.config.Address)
}

// Stop stops the webhook server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleWebhook handles incoming webhook requests.
// The body is read fully before the signature check, and every outcome maps
// to an HTTP status: 401 bad signature, 400 malformed payload, 200 skip or
// success, 500 forward failure.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read webhook body")
		return
	}

	if err := webhook.ValidateSignature(s.config.WebhookSecret, body, r.Header.Get(signatureHeader)); err != nil {
		ctx.Unauthorized(err, "webhook signature validation failed")
		return
	}

	event, err := webhook.ParseEvent(body)
	if err != nil {
		ctx.BadRequest(err, "failed to parse webhook payload")
		return
	}
	event.DeliveryID = github.DeliveryID(r)
	event.Type = github.WebHookType(r)

	if !webhook.ShouldForward(event.Type, event) {
		s.log.Debug("ignoring event", "event_type", event.Type, "action", event.Action, "delivery_id", event.DeliveryID)
		ctx.Response(http.StatusOK)
		return
	}

	log := s.log.WithFields("delivery_id", event.DeliveryID, "pr", event.String())
	log.Info("received pull request event", "title", event.PullRequest.Title)

	if _, err := s.forwarder.Forward(r.Context(), event); err != nil {
		ctx.InternalServerError(err, "failed to forward event to agent")
		return
	}

	ctx.Response(http.StatusOK)
}

// handleHealth handles health check requests, no auth and no dependency checks
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
