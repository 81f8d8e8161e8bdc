package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/recapkit/recapkit/pkg/providers"
)

const defaultModel = "gemini-2.5-flash"

// supportedModels is the fixed set of model variants exposed by the CLI
var supportedModels = []string{"gemini-2.5-flash", "gemini-2.5-pro"}

// Provider implements the completion provider interface for Google Gemini
type Provider struct {
	apiKey string
	model  string
}

// NewProvider creates a new Gemini provider instance
func NewProvider(apiKey string, options ...ProviderOption) *Provider {
	p := &Provider{
		apiKey: apiKey,
		model:  defaultModel,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// ProviderOption allows customizing the provider
type ProviderOption func(*Provider)

// WithModel sets the Gemini model to use
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "gemini"
}

// Model returns the model identifier this provider is bound to
func (p *Provider) Model() string {
	return p.model
}

// Complete sends the prompt to the Gemini API and returns the response text.
// A failed call is surfaced immediately; there is no retry.
func (p *Provider) Complete(ctx context.Context, req *providers.CompletionRequest) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := req.Prompt
	if req.SystemPrompt != "" {
		prompt = req.SystemPrompt + "\n\n" + prompt
	}

	var config *genai.GenerateContentConfig
	if req.Options.Temperature > 0 || req.Options.MaxTokens > 0 {
		config = &genai.GenerateContentConfig{}
		if req.Options.Temperature > 0 {
			config.Temperature = genai.Ptr(req.Options.Temperature)
		}
		if req.Options.MaxTokens > 0 {
			config.MaxOutputTokens = int32(req.Options.MaxTokens)
		}
	}

	result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content request failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	response := strings.TrimSpace(text.String())
	if response == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return response, nil
}

// ValidateConfig validates the provider configuration
func (p *Provider) ValidateConfig() error {
	if p.apiKey == "" {
		return fmt.Errorf("Gemini API key is required")
	}
	for _, m := range supportedModels {
		if p.model == m {
			return nil
		}
	}
	return fmt.Errorf("unsupported Gemini model %q (expected one of %s)", p.model, strings.Join(supportedModels, ", "))
}

// SupportedModels returns the fixed set of selectable model names
func SupportedModels() []string {
	return supportedModels
}
