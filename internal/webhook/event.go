package webhook

import (
	"strconv"

	"github.com/google/go-github/v57/github"
	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"

	"github.com/ghagent/relay/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// EventTypePullRequest is the X-GitHub-Event value the relay acts on
	EventTypePullRequest = "pull_request"

	// ActionOpened is the only pull request action that gets forwarded
	ActionOpened = "opened"
)

// ParseEvent parses a pull_request webhook payload into the relay's event model
func ParseEvent(payload []byte) (*model.Event, error) {
	var event github.PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errm.Wrap(err, "failed to parse webhook payload")
	}

	pr := event.GetPullRequest()
	sender := event.GetSender()
	author := pr.GetUser()

	// The delivery's event type lives in the X-GitHub-Event header, not the
	// payload, so the caller fills Type alongside DeliveryID.
	return &model.Event{
		Action: event.GetAction(),
		Repo:   event.GetRepo().GetFullName(),
		Sender: &model.User{
			ID:       strconv.FormatInt(sender.GetID(), 10),
			Username: sender.GetLogin(),
			Name:     sender.GetName(),
		},
		PullRequest: &model.PullRequest{
			ID:           strconv.FormatInt(pr.GetID(), 10),
			Number:       pr.GetNumber(),
			Title:        pr.GetTitle(),
			Description:  pr.GetBody(),
			SourceBranch: pr.GetHead().GetRef(),
			TargetBranch: pr.GetBase().GetRef(),
			URL:          pr.GetHTMLURL(),
			State:        pr.GetState(),
			Author: &model.User{
				ID:       strconv.FormatInt(author.GetID(), 10),
				Username: author.GetLogin(),
				Name:     author.GetName(),
			},
		},
	}, nil
}

// ShouldForward reports whether a delivery is the single event/action pair
// the relay forwards. Anything else is a benign skip, including a missing
// action field.
func ShouldForward(eventType string, event *model.Event) bool {
	if event == nil {
		return false
	}
	return eventType == EventTypePullRequest && event.Action == ActionOpened
}
