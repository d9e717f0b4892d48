package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// requestTimeout bounds the whole round trip to the completion endpoint.
const requestTimeout = 60 * time.Second

// ChatClient talks to any OpenAI-compatible /chat/completions endpoint using
// a bearer token. The model identifier is fixed at construction time.
type ChatClient struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

// NewChatClient creates a client for the endpoint at baseURL.
func NewChatClient(baseURL, token, model string) *ChatClient {
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Complete sends one chat-completion request and returns the first choice's
// content. Any upstream failure is surfaced as *UpstreamError.
func (c *ChatClient) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("at least one message is required")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &UpstreamError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errBody)
		return "", &UpstreamError{
			Status: resp.StatusCode,
			Reason: fmt.Sprintf("request rejected: %v", errBody),
		}
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &UpstreamError{Reason: "failed to decode response", Err: err}
	}
	if len(chatResp.Choices) == 0 {
		return "", &UpstreamError{Reason: "empty choices in response"}
	}

	return chatResp.Choices[0].Message.Content, nil
}
