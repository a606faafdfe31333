package llm

import (
	"encoding/json"

	"github.com/reagent-ai/reagent/provider"
)

// Option configures an LLM call.
type Option func(*callConfig)

// callConfig holds all configuration for a call.
type callConfig struct {
	providerName  string
	model         string
	temperature   *float64
	maxTokens     *int
	systemMessage string
	tools         []Tool
	messages      []Message
}

func newCallConfig() *callConfig {
	return &callConfig{}
}

func (c *callConfig) apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithProvider sets the provider (e.g., "githubmodels").
func WithProvider(name string) Option {
	return func(c *callConfig) {
		c.providerName = name
	}
}

// WithModel sets the model to use (e.g., "openai/gpt-4o").
func WithModel(name string) Option {
	return func(c *callConfig) {
		c.model = name
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *callConfig) {
		c.temperature = &t
	}
}

// WithMaxTokens sets the maximum tokens in the response.
func WithMaxTokens(n int) Option {
	return func(c *callConfig) {
		c.maxTokens = &n
	}
}

// WithSystemMessage sets a system message.
func WithSystemMessage(msg string) Option {
	return func(c *callConfig) {
		c.systemMessage = msg
	}
}

// WithTools adds tools the model can use.
func WithTools(tools ...Tool) Option {
	return func(c *callConfig) {
		c.tools = append(c.tools, tools...)
	}
}

// WithMessages sets the conversation history.
// This is useful for multi-turn conversations with Call.
func WithMessages(msgs ...Message) Option {
	return func(c *callConfig) {
		c.messages = append(c.messages, msgs...)
	}
}

// buildRequest creates a provider.Request from the config and prompt.
func (c *callConfig) buildRequest(prompt string) *provider.Request {
	req := &provider.Request{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	// Add system message if present
	if c.systemMessage != "" {
		req.Messages = append(req.Messages, provider.Message{
			Role:    provider.RoleSystem,
			Content: c.systemMessage,
		})
	}

	// Add conversation history
	req.Messages = append(req.Messages, c.messages...)

	// Add the user prompt
	if prompt != "" {
		req.Messages = append(req.Messages, provider.Message{
			Role:    provider.RoleUser,
			Content: prompt,
		})
	}

	req.Tools = toolDefs(c.tools)
	return req
}

// buildRequestFromMessages creates a provider.Request from messages.
func (c *callConfig) buildRequestFromMessages(messages []Message) *provider.Request {
	return &provider.Request{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages:    messages,
		Tools:       toolDefs(c.tools),
	}
}

func toolDefs(tools []Tool) []provider.ToolDef {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]provider.ToolDef, 0, len(tools))
	for _, tool := range tools {
		params, _ := json.Marshal(tool.Parameters())
		defs = append(defs, provider.ToolDef{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  params,
		})
	}
	return defs
}
