package model

import "strconv"

// User represents the GitHub account behind an event
type User struct {
	ID       string
	Username string
	Name     string
}

// PullRequest carries the subset of pull request metadata that gets forwarded
type PullRequest struct {
	ID           string
	Number       int
	Title        string
	Description  string
	SourceBranch string
	TargetBranch string
	URL          string
	State        string
	Author       *User
}

// Event represents a parsed webhook delivery
type Event struct {
	Type        string
	Action      string
	DeliveryID  string
	Repo        string
	Sender      *User
	PullRequest *PullRequest
}

func (e *Event) String() string {
	number := 0
	if e.PullRequest != nil {
		number = e.PullRequest.Number
	}
	return "PR #" + strconv.Itoa(number) + " in " + e.Repo
}
