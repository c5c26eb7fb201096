package forwarder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/ghagent/relay/internal/model"
)

const (
	runsWaitPath = "/runs/wait"

	apiKeyHeader     = "x-api-key"
	authSchemeHeader = "X-Auth-Scheme"
	authScheme       = "langsmith-api-key"

	roleHuman = "human"
)

var _ model.AgentForwarder = (*Forwarder)(nil)

// poster is the outbound HTTP seam, satisfied by cliex.HTTP
type poster interface {
	Post(ctx context.Context, url string, requestBody any, responseBody ...any) (*resty.Response, error)
}

// Forwarder delivers accepted pull request events to the agent endpoint,
// retrying transient failures with exponential backoff
type Forwarder struct {
	cfg Config
	cli poster
	log logze.Logger
}

// New creates a new agent forwarder
func New(cfg Config) (*Forwarder, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	cli, err := cliex.NewWithConfig(cliex.Config{
		BaseURL:        cfg.BaseURL,
		UserAgent:      cfg.UserAgent,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}
	cli.C().SetHeader(apiKeyHeader, cfg.APIKey)
	cli.C().SetHeader(authSchemeHeader, authScheme)

	return &Forwarder{
		cfg: cfg,
		cli: cli,
		log: logze.With("module", "forwarder"),
	}, nil
}

// Forward invokes the agent with a request derived from the event.
// Transient failures (transport errors, 429, 5xx) are retried with doubling
// delays up to the configured attempt budget; other client errors fail
// immediately. The terminal error is always a *ForwardError.
func (f *Forwarder) Forward(ctx context.Context, event *model.Event) (model.AgentResponse, error) {
	req := runRequest{
		AssistantID: f.cfg.AgentID,
		Input: runInput{
			Messages: []message{{
				Role:    roleHuman,
				Content: BuildAgentInput(event),
			}},
		},
	}

	log := f.log.WithFields("delivery_id", event.DeliveryID, "pr", event.String())
	timer := abstract.StartTimer()

	var (
		lastErr    error
		lastStatus int
	)
	delay := f.cfg.RetryDelay

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		var result model.AgentResponse
		resp, err := f.cli.Post(ctx, runsWaitPath, req, &result)

		if err == nil {
			status := 0
			if resp != nil {
				status = resp.StatusCode()
			}
			log.Info("agent invocation successful",
				"attempts", attempt,
				"status", status,
				"elapsed_time", timer.ElapsedTime().String(),
			)
			return result, nil
		}

		// The client surfaces failed statuses as sentinel errors with a nil
		// response, so classification must go through the error chain.
		status, transient := classifyError(err)
		lastErr, lastStatus = err, status

		if !transient {
			log.Warn("agent returned permanent error", "status", status)
			return nil, &ForwardError{StatusCode: status, Attempts: attempt, Permanent: true, Err: err}
		}
		if attempt == f.cfg.MaxAttempts {
			break
		}

		log.Warn("agent invocation failed, retrying",
			"attempt", attempt,
			"max_attempts", f.cfg.MaxAttempts,
			"status", status,
			"retry_in", delay.String(),
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			// The inbound request is gone, remaining retries are pointless
			return nil, &ForwardError{StatusCode: status, Attempts: attempt, Err: errm.Wrap(ctx.Err(), "forward canceled")}
		case <-time.After(delay):
		}
		delay *= 2
	}

	log.Error("agent invocation failed",
		"attempts", f.cfg.MaxAttempts,
		"status", lastStatus,
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return nil, &ForwardError{StatusCode: lastStatus, Attempts: f.cfg.MaxAttempts, Err: lastErr}
}

// classifyError recovers the HTTP status behind a client error and reports
// whether the failure is worth retrying. cliex maps response statuses to
// sentinel errors; an error matching no sentinel means the request never got
// an HTTP response at all, which is always transient.
func classifyError(err error) (status int, transient bool) {
	for code, sentinel := range cliex.ErrorMapping {
		if errors.Is(err, sentinel) {
			status = code
			break
		}
	}
	switch {
	case status == 0:
		return 0, true
	case errors.Is(err, cliex.ErrTooManyRequests), cliex.IsServerError(err):
		return status, true
	}
	return status, false
}

// BuildAgentInput renders the message the agent receives. The same payload
// fields always produce the same bytes.
func BuildAgentInput(event *model.Event) string {
	pr := event.PullRequest
	if pr == nil {
		pr = &model.PullRequest{}
	}

	author := ""
	if pr.Author != nil {
		author = pr.Author.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pull request %s: %s\n", event.Action, pr.Title)
	fmt.Fprintf(&b, "Repository: %s\n", event.Repo)
	fmt.Fprintf(&b, "Number: #%d\n", pr.Number)
	fmt.Fprintf(&b, "Author: %s\n", author)
	fmt.Fprintf(&b, "Branches: %s -> %s\n", pr.SourceBranch, pr.TargetBranch)
	fmt.Fprintf(&b, "URL: %s\n", pr.URL)
	if pr.Description != "" {
		b.WriteString("\n")
		b.WriteString(pr.Description)
		b.WriteString("\n")
	}

	return b.String()
}
