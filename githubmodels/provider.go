// Package githubmodels provides a GitHub Models inference provider
// with ReAct-style tool calling parsed from model output.
package githubmodels

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/reagent-ai/reagent/provider"
	"github.com/reagent-ai/reagent/react"
)

func init() {
	provider.Register("githubmodels", func() (provider.Provider, error) {
		return New()
	})
}

// Provider implements the GitHub Models chat-completions API.
type Provider struct {
	client *client
}

// Option configures the GitHub Models provider.
type Option func(*providerConfig)

type providerConfig struct {
	token      string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// WithToken sets the GitHub token used as the bearer credential.
func WithToken(token string) Option {
	return func(c *providerConfig) {
		c.token = token
	}
}

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) Option {
	return func(c *providerConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *providerConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-attempt request timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *providerConfig) {
		c.timeout = d
	}
}

// WithMaxRetries sets the retry budget for rate-limited responses and
// transport errors (default 3). Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *providerConfig) {
		c.maxRetries = n
	}
}

// WithLogger sets the logger for rate-limit and backoff debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *providerConfig) {
		c.logger = logger
	}
}

// New creates a new GitHub Models provider.
func New(opts ...Option) (*Provider, error) {
	cfg := &providerConfig{
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Fall back to environment variable
	if cfg.token == "" {
		cfg.token = os.Getenv("GITHUB_TOKEN")
	}

	if cfg.token == "" {
		return nil, &APIError{
			Message: "GitHub token required: set GITHUB_TOKEN or use WithToken",
		}
	}

	return &Provider{
		client: newClient(cfg.token, cfg.baseURL, cfg.httpClient, cfg.timeout, cfg.maxRetries, cfg.logger),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "githubmodels"
}

// Call implements provider.Provider.
func (p *Provider) Call(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	apiResp, err := p.client.chatCompletions(ctx, p.buildRequest(req))
	if err != nil {
		return nil, err
	}

	return parseResponse(apiResp)
}

// buildRequest converts a provider.Request to the wire format. When
// tools are bound, the system message is extended (or inserted) with
// the ReAct tool instructions.
func (p *Provider) buildRequest(req *provider.Request) *chatRequest {
	msgs := toWireMessages(req.Messages)
	if len(req.Tools) > 0 {
		msgs = withToolPrompt(msgs, req.Tools)
	}

	return &chatRequest{
		Model:       req.Model,
		Messages:    msgs,
		Stream:      false,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

// toWireMessages flattens the message model into role/content pairs.
// Assistant tool calls are rendered as Action/Action Input lines; tool
// results come back as user messages carrying an Observation.
func toWireMessages(messages []provider.Message) []chatMessage {
	wire := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case provider.RoleSystem:
			wire = append(wire, chatMessage{Role: "system", Content: msg.Content})
		case provider.RoleUser:
			wire = append(wire, chatMessage{Role: "user", Content: msg.Content})
		case provider.RoleAssistant:
			content := msg.Content
			for _, tc := range msg.ToolCalls {
				args := tc.Args
				if args == nil {
					args = map[string]any{}
				}
				encoded, _ := json.Marshal(args)
				content += fmt.Sprintf("\n\nAction: %s\nAction Input: %s", tc.Name, encoded)
			}
			wire = append(wire, chatMessage{Role: "assistant", Content: content})
		case provider.RoleTool:
			wire = append(wire, chatMessage{Role: "user", Content: "Observation: " + msg.Content})
		}
	}
	return wire
}

// withToolPrompt ensures a system message carrying the ReAct tool
// instructions: an existing leading system message is extended,
// otherwise a complete one is inserted at the front.
func withToolPrompt(msgs []chatMessage, tools []provider.ToolDef) []chatMessage {
	if len(msgs) > 0 && msgs[0].Role == "system" {
		msgs[0].Content += react.BuildToolDescriptions(tools)
		return msgs
	}

	system := chatMessage{Role: "system", Content: react.BuildSystemPrompt(tools)}
	return append([]chatMessage{system}, msgs...)
}

// parseResponse reads the first choice and extracts any embedded tool
// calls from its content.
func parseResponse(resp *chatResponse) (*provider.Response, error) {
	if len(resp.Choices) == 0 {
		return nil, ErrNoContent
	}
	choice := resp.Choices[0]

	result := &provider.Response{
		Content:      choice.Message.Content,
		FinishReason: provider.FinishReasonStop,
		Usage: provider.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if choice.FinishReason == "length" {
		result.FinishReason = provider.FinishReasonLength
	}

	if react.ContainsToolCalls(choice.Message.Content) {
		if calls := react.ExtractToolCalls(choice.Message.Content); len(calls) > 0 {
			result.ToolCalls = calls
			result.FinishReason = provider.FinishReasonToolCalls
		}
	}

	return result, nil
}
