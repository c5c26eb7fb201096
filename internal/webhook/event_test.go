package webhook

import (
	"testing"

	"github.com/ghagent/relay/internal/model"
)

const pullRequestPayload = `{
	"action": "opened",
	"number": 42,
	"repository": {"full_name": "ghagent/relay"},
	"sender": {"id": 7, "login": "octocat"},
	"pull_request": {
		"id": 1001,
		"number": 42,
		"title": "Add retry budget to forwarder",
		"body": "Doubles the delay between attempts.",
		"html_url": "https://github.com/ghagent/relay/pull/42",
		"state": "open",
		"user": {"id": 7, "login": "octocat"},
		"head": {"ref": "feature/retry-budget"},
		"base": {"ref": "main"}
	}
}`

func TestParseEvent(t *testing.T) {
	event, err := ParseEvent([]byte(pullRequestPayload))
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}

	if event.Action != "opened" {
		t.Errorf("Action = %q, want opened", event.Action)
	}
	if event.Type != "" {
		t.Errorf("Type = %q, want empty: the event type comes from the header, not the payload", event.Type)
	}
	if event.Repo != "ghagent/relay" {
		t.Errorf("Repo = %q, want ghagent/relay", event.Repo)
	}
	if event.Sender.Username != "octocat" {
		t.Errorf("Sender.Username = %q, want octocat", event.Sender.Username)
	}

	pr := event.PullRequest
	if pr.Number != 42 {
		t.Errorf("Number = %d, want 42", pr.Number)
	}
	if pr.Title != "Add retry budget to forwarder" {
		t.Errorf("Title = %q", pr.Title)
	}
	if pr.SourceBranch != "feature/retry-budget" || pr.TargetBranch != "main" {
		t.Errorf("Branches = %q -> %q", pr.SourceBranch, pr.TargetBranch)
	}
	if pr.URL != "https://github.com/ghagent/relay/pull/42" {
		t.Errorf("URL = %q", pr.URL)
	}
	if pr.Author.Username != "octocat" {
		t.Errorf("Author.Username = %q, want octocat", pr.Author.Username)
	}
}

func TestParseEventMalformed(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"action": `)); err == nil {
		t.Error("ParseEvent() with malformed JSON: error = nil, want error")
	}
}

func TestParseEventMissingFields(t *testing.T) {
	// A payload without action or pull_request must parse without panicking
	event, err := ParseEvent([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}
	if event.Action != "" {
		t.Errorf("Action = %q, want empty", event.Action)
	}
	if event.PullRequest.Number != 0 {
		t.Errorf("Number = %d, want 0", event.PullRequest.Number)
	}
}

func TestShouldForward(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		action    string
		want      bool
	}{
		{"pull request opened", "pull_request", "opened", true},
		{"pull request closed", "pull_request", "closed", false},
		{"pull request reopened", "pull_request", "reopened", false},
		{"pull request synchronize", "pull_request", "synchronize", false},
		{"missing action", "pull_request", "", false},
		{"push event", "push", "opened", false},
		{"issues event", "issues", "opened", false},
		{"missing event type", "", "opened", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.Event{Action: tt.action}
			if got := ShouldForward(tt.eventType, event); got != tt.want {
				t.Errorf("ShouldForward(%q, action=%q) = %v, want %v", tt.eventType, tt.action, got, tt.want)
			}
		})
	}

	if ShouldForward("pull_request", nil) {
		t.Error("ShouldForward with nil event = true, want false")
	}
}
