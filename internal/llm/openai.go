package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client on the official openai-go SDK. It serves
// deployments that point the service at the OpenAI platform itself (or any
// gateway the SDK can reach via a base URL override).
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient creates an SDK-backed client. baseURL may be empty to use
// the platform default. The SDK's automatic retries are disabled and the
// whole round trip is bounded, matching ChatClient.
func NewOpenAIClient(token, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(token),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{model: model, opts: opts}
}

// Complete satisfies Client with the same single-shot, no-retry semantics as
// ChatClient.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("at least one message is required")
	}

	client := openai.NewClient(c.opts...)

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		case "system":
			msgs = append(msgs, openai.SystemMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", &UpstreamError{Reason: "request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Reason: "empty choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}
