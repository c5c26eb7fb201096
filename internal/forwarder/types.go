package forwarder

// Agent API request structures for a threadless run
type runRequest struct {
	AssistantID string   `json:"assistant_id"`
	Input       runInput `json:"input"`
}

type runInput struct {
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
