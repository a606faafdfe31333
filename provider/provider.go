// Package provider defines the interface for chat-completion providers.
package provider

import "context"

// Provider is the core abstraction for chat-completion backends.
// All provider implementations must satisfy this interface.
type Provider interface {
	// Name returns the provider identifier (e.g., "githubmodels").
	Name() string

	// Call executes a chat-completion request and returns the parsed
	// response, including any tool calls embedded in the model output.
	Call(ctx context.Context, req *Request) (*Response, error)
}
