// Package genai wraps the OpenAI chat completion API for the free-text
// fallback. It exposes plain message generation and tool-assisted
// generation behind a small interface so callers can be tested with mocks.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.ChatModelGPT4oMini

// FunctionCall carries the function name and raw JSON arguments of a tool
// invocation requested by the model.
type FunctionCall struct {
	Name      string
	Arguments json.RawMessage
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

// ToolCallResponse is the result of a tool-enabled generation: the
// assistant text (possibly empty) plus any requested tool calls.
type ToolCallResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// ClientInterface is the generation contract consumed by the dialogue
// fallback bridge.
type ClientInterface interface {
	GenerateWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
	GenerateWithTools(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam) (*ToolCallResponse, error)
}

// Opts collects configuration for the client.
type Opts struct {
	APIKey string
	Model  string
}

// Option configures the client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key, overriding the environment.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel sets the chat model to use.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// Client implements ClientInterface against the OpenAI API.
type Client struct {
	client openai.Client
	model  string
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates an OpenAI-backed client. The API key falls back to the
// OPENAI_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	slog.Debug("GenAI client created", "model", cfg.Model)
	return &Client{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
	}, nil
}

// GenerateWithMessages runs a chat completion over the given messages and
// returns the assistant text.
func (c *Client) GenerateWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		slog.Error("GenAI GenerateWithMessages failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateWithTools runs a chat completion with the given tools attached
// and returns the assistant text plus any tool calls the model requested.
func (c *Client) GenerateWithTools(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam) (*ToolCallResponse, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		slog.Error("GenAI GenerateWithTools failed", "error", err)
		return nil, fmt.Errorf("chat completion with tools failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	out := toolCallResponseFromMessage(resp.Choices[0].Message)
	slog.Debug("GenAI GenerateWithTools completed",
		"hasContent", out.Content != "",
		"toolCallCount", len(out.ToolCalls))
	return out, nil
}

func toolCallResponseFromMessage(msg openai.ChatCompletionMessage) *ToolCallResponse {
	out := &ToolCallResponse{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:   tc.ID,
			Type: string(tc.Type),
			Function: FunctionCall{
				Name:      tc.Function.Name,
				Arguments: json.RawMessage(tc.Function.Arguments),
			},
		})
	}
	return out
}
