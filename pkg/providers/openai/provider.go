package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/recapkit/recapkit/pkg/providers"
)

const defaultModel = "gpt-4-turbo"

// supportedModels is the fixed set of model variants exposed by the CLI
var supportedModels = []string{"gpt-4-turbo", "gpt-4o", "gpt-4o-mini"}

// Provider implements the completion provider interface for OpenAI
type Provider struct {
	client openai.Client
	model  string
	apiKey string
}

// NewProvider creates a new OpenAI provider instance
func NewProvider(apiKey string, options ...ProviderOption) *Provider {
	p := &Provider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  defaultModel,
		apiKey: apiKey,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// ProviderOption allows customizing the provider
type ProviderOption func(*Provider)

// WithModel sets the OpenAI model to use
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ProviderOption {
	return func(p *Provider) {
		p.client = openai.NewClient(
			option.WithAPIKey(p.apiKey),
			option.WithBaseURL(url),
		)
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// Model returns the model identifier this provider is bound to
func (p *Provider) Model() string {
	return p.model
}

// Complete sends the prompt to the chat completions API and returns the
// response text. A failed call is surfaced immediately; there is no retry.
func (p *Provider) Complete(ctx context.Context, req *providers.CompletionRequest) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}
	if req.Options.Temperature > 0 {
		params.Temperature = openai.Float(float64(req.Options.Temperature))
	}
	if req.Options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.Options.MaxTokens))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion response")
	}

	return text, nil
}

// ValidateConfig validates the provider configuration
func (p *Provider) ValidateConfig() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}
	for _, m := range supportedModels {
		if p.model == m {
			return nil
		}
	}
	return fmt.Errorf("unsupported OpenAI model %q (expected one of %s)", p.model, strings.Join(supportedModels, ", "))
}

// SupportedModels returns the fixed set of selectable model names
func SupportedModels() []string {
	return supportedModels
}
