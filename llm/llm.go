// Package llm provides the main API for making LLM calls.
package llm

import (
	"context"
	"fmt"

	"github.com/reagent-ai/reagent/provider"
)

// Call makes an LLM call and returns a text response.
//
// Example:
//
//	resp, err := llm.Call(ctx, "Recommend a fantasy book",
//	    llm.WithProvider("githubmodels"),
//	    llm.WithModel("openai/gpt-4o"),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Text())
func Call(ctx context.Context, prompt string, opts ...Option) (Response, error) {
	cfg := newCallConfig()
	cfg.apply(opts...)

	if cfg.providerName == "" {
		return Response{}, ErrProviderRequired
	}
	if cfg.model == "" {
		return Response{}, ErrModelRequired
	}

	p, err := provider.Get(cfg.providerName)
	if err != nil {
		return Response{}, fmt.Errorf("getting provider: %w", err)
	}

	req := cfg.buildRequest(prompt)

	resp, err := p.Call(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("calling provider: %w", err)
	}

	// Build message history for Resume support
	messages := buildMessagesFromRequest(req, resp)
	config := &responseConfig{
		providerName: cfg.providerName,
		model:        cfg.model,
		tools:        cfg.tools,
	}

	return newResponseWithHistory(resp, messages, config), nil
}

// CallMessages makes an LLM call with a full message history.
// This is useful for multi-turn conversations.
//
// Example:
//
//	messages := []llm.Message{
//	    llm.SystemMessage("You are a helpful assistant"),
//	    llm.UserMessage("Hello"),
//	    llm.AssistantMessage("Hi! How can I help?"),
//	    llm.UserMessage("Tell me a joke"),
//	}
//
//	resp, err := llm.CallMessages(ctx, messages,
//	    llm.WithProvider("githubmodels"),
//	    llm.WithModel("openai/gpt-4o"),
//	)
func CallMessages(ctx context.Context, messages []Message, opts ...Option) (Response, error) {
	cfg := newCallConfig()
	cfg.apply(opts...)

	if cfg.providerName == "" {
		return Response{}, ErrProviderRequired
	}
	if cfg.model == "" {
		return Response{}, ErrModelRequired
	}

	p, err := provider.Get(cfg.providerName)
	if err != nil {
		return Response{}, fmt.Errorf("getting provider: %w", err)
	}

	req := cfg.buildRequestFromMessages(messages)

	resp, err := p.Call(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("calling provider: %w", err)
	}

	historyMessages := buildMessagesFromRequest(req, resp)
	config := &responseConfig{
		providerName: cfg.providerName,
		model:        cfg.model,
		tools:        cfg.tools,
	}

	return newResponseWithHistory(resp, historyMessages, config), nil
}

// buildMessagesFromRequest creates the full message history from request and response.
func buildMessagesFromRequest(req *provider.Request, resp *provider.Response) []Message {
	messages := make([]Message, 0, len(req.Messages)+1)
	messages = append(messages, req.Messages...)

	if len(resp.ToolCalls) > 0 {
		messages = append(messages, AssistantMessageWithToolCalls(resp.Content, resp.ToolCalls))
	} else {
		messages = append(messages, AssistantMessage(resp.Content))
	}

	return messages
}
