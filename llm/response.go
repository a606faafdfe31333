package llm

import (
	"context"
	"fmt"

	"github.com/reagent-ai/reagent/provider"
)

// Response wraps the provider response together with the conversation
// history that produced it.
type Response struct {
	raw      *provider.Response
	messages []Message       // Full conversation history
	config   *responseConfig // Provider/model info for Resume
}

// responseConfig stores the configuration needed to resume a conversation.
type responseConfig struct {
	providerName string
	model        string
	tools        []Tool
}

// Text returns the raw text content of the response.
func (r Response) Text() string {
	if r.raw == nil {
		return ""
	}
	return r.raw.Content
}

// HasToolCalls returns true if the response contains tool calls.
func (r Response) HasToolCalls() bool {
	return r.raw != nil && len(r.raw.ToolCalls) > 0
}

// ToolCalls returns any tool calls made by the model.
func (r Response) ToolCalls() []ToolCall {
	if r.raw == nil {
		return nil
	}
	return r.raw.ToolCalls
}

// Usage returns token usage statistics.
func (r Response) Usage() Usage {
	if r.raw == nil {
		return Usage{}
	}
	return Usage{
		PromptTokens:     r.raw.Usage.PromptTokens,
		CompletionTokens: r.raw.Usage.CompletionTokens,
		TotalTokens:      r.raw.Usage.TotalTokens,
	}
}

// FinishReason returns why the model stopped generating.
func (r Response) FinishReason() FinishReason {
	if r.raw == nil {
		return ""
	}
	return FinishReason(r.raw.FinishReason)
}

// Raw returns the underlying provider response.
// This can be useful for debugging or accessing provider-specific data.
func (r Response) Raw() *provider.Response {
	return r.raw
}

// Messages returns the full conversation history including the assistant's response.
func (r Response) Messages() []Message {
	return r.messages
}

// Resume continues the conversation with additional user content.
// It uses the same provider, model, and tools from the original call.
//
// Example:
//
//	resp, _ := llm.Call(ctx, "Recommend a book", opts...)
//	continuation, _ := resp.Resume(ctx, "Why did you recommend that one?")
//	fmt.Println(continuation.Text())
func (r Response) Resume(ctx context.Context, content string, opts ...Option) (Response, error) {
	if r.config == nil {
		return Response{}, fmt.Errorf("cannot resume: response was not created with Resume support")
	}

	newMessages := make([]Message, len(r.messages), len(r.messages)+1)
	copy(newMessages, r.messages)
	newMessages = append(newMessages, UserMessage(content))

	// Build options: start with original config, then apply any overrides
	allOpts := make([]Option, 0, len(opts)+3)
	allOpts = append(allOpts, WithProvider(r.config.providerName), WithModel(r.config.model))
	if len(r.config.tools) > 0 {
		allOpts = append(allOpts, WithTools(r.config.tools...))
	}
	allOpts = append(allOpts, opts...)

	return CallMessages(ctx, newMessages, allOpts...)
}

// ResumeWithToolOutputs continues the conversation with tool execution results.
// This is used after the model has requested tool calls.
//
// Example:
//
//	if resp.HasToolCalls() {
//	    toolMessages, _ := llm.ExecuteToolCalls(ctx, resp.ToolCalls(), registry)
//	    continuation, _ := resp.ResumeWithToolOutputs(ctx, toolMessages)
//	    fmt.Println(continuation.Text())
//	}
func (r Response) ResumeWithToolOutputs(ctx context.Context, toolOutputs []Message, opts ...Option) (Response, error) {
	if r.config == nil {
		return Response{}, fmt.Errorf("cannot resume: response was not created with Resume support")
	}

	newMessages := make([]Message, len(r.messages), len(r.messages)+len(toolOutputs))
	copy(newMessages, r.messages)
	newMessages = append(newMessages, toolOutputs...)

	allOpts := make([]Option, 0, len(opts)+3)
	allOpts = append(allOpts, WithProvider(r.config.providerName), WithModel(r.config.model))
	if len(r.config.tools) > 0 {
		allOpts = append(allOpts, WithTools(r.config.tools...))
	}
	allOpts = append(allOpts, opts...)

	return CallMessages(ctx, newMessages, allOpts...)
}

// Usage contains token usage information.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishReasonStop      FinishReason = "stop"
	FinishReasonToolCalls FinishReason = "tool_calls"
	FinishReasonLength    FinishReason = "length"
)

// newResponseWithHistory creates a Response with conversation history and
// config for Resume support.
func newResponseWithHistory(raw *provider.Response, messages []Message, config *responseConfig) Response {
	return Response{
		raw:      raw,
		messages: messages,
		config:   config,
	}
}
