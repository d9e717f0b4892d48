// Package llm wraps access to OpenAI-compatible chat-completion endpoints.
package llm

import (
	"context"
	"fmt"
)

// RoleUser is the only message role this service emits.
const RoleUser = "user"

// Message is one role/content pair of a chat-completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client issues a single chat completion and returns the first choice's text.
// Implementations perform exactly one request per call and never retry.
type Client interface {
	Complete(ctx context.Context, messages []Message, temperature float64) (string, error)
}

// UpstreamError reports a failed round trip to the completion endpoint:
// transport failure or timeout, a non-success status, or an unusable
// response body.
type UpstreamError struct {
	Status int // HTTP status, 0 when no response was received
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	msg := "completion endpoint: " + e.Reason
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }
