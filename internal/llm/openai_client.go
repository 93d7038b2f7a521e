package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrNotConfigured indicates no API credential is configured; the call
	// path refuses to attempt a model call.
	ErrNotConfigured = errors.New("OpenAI service unavailable")
	// ErrRequest indicates a transport or auth failure calling the model.
	ErrRequest = errors.New("OpenAI request failed")
	// ErrResponse indicates the model returned an unusable response body.
	ErrResponse = errors.New("failed to read OpenAI response")
)

// Role constants for chat messages.
const (
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleUser      = "user"
)

// Message is one chat message in a model call.
type Message struct {
	Role    string
	Content string
}

// ChatClient is the narrow contract to the generative model: an ordered
// message list in, raw text out. Transport errors (ErrRequest) are
// distinct from malformed-output conditions, which are detected by the
// caller after parsing.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message, temperature float64) (string, error)
}

// OpenAIClient implements ChatClient against the OpenAI chat-completion API.
type OpenAIClient struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a client for coach generation.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string, maxTokens int) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if maxTokens <= 0 {
		maxTokens = 10000
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete performs a single blocking chat-completion call.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleDeveloper:
			out = append(out, openai.DeveloperMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
