package providers

import "context"

// CompletionRequest represents a request to the text-generation service
type CompletionRequest struct {
	// SystemPrompt sets the assistant behavior for providers that support it
	SystemPrompt string

	// Prompt is the full user prompt, template plus transcript
	Prompt string

	// Options provides additional configuration for the request
	Options CompletionOptions
}

// CompletionOptions provides additional configuration for completion
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
}

// CompletionProvider defines the interface for text-generation providers
type CompletionProvider interface {
	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string

	// Model returns the model identifier this provider is bound to
	Model() string

	// Complete sends the prompt to the service and returns its text response
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// ValidateConfig validates the provider configuration
	ValidateConfig() error
}
