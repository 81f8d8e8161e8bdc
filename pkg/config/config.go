package config

import (
	"fmt"
	"os"
	"time"

	"github.com/recapkit/recapkit/pkg/errs"
	"github.com/recapkit/recapkit/pkg/logger"
)

// Config represents the application configuration
type Config struct {
	// Text-generation provider configuration
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`

	// Speech-recognition engine configuration
	Whisper WhisperConfig `yaml:"whisper" mapstructure:"whisper"`

	// Output workspace configuration
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`

	// Logging configuration
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ProviderConfig contains text-generation provider settings
type ProviderConfig struct {
	// Provider name (openai, gemini)
	Name string `yaml:"name" mapstructure:"name"`

	// API Configuration
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Model Configuration. An empty model selects the provider's default.
	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Request Configuration
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// WhisperConfig contains speech-recognition engine settings
type WhisperConfig struct {
	// Path to the whisper executable
	Binary string `yaml:"binary" mapstructure:"binary"`

	// Model size (tiny, base, small, medium, large)
	Model string `yaml:"model" mapstructure:"model"`

	// Optional language hint (empty means auto-detect)
	Language string `yaml:"language" mapstructure:"language"`

	// Include segment timestamps in the transcript
	Timestamps bool `yaml:"timestamps" mapstructure:"timestamps"`
}

// WorkspaceConfig contains output directory settings
type WorkspaceConfig struct {
	// Root directory holding input/, transcripts/, summaries/, temp/, metadata/
	Root string `yaml:"root" mapstructure:"root"`

	// Keep extracted audio files after the run
	KeepTemp bool `yaml:"keep_temp" mapstructure:"keep_temp"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:        "openai",
			Temperature: 0.3,
			MaxTokens:   1024,
			Timeout:     5 * time.Minute,
		},
		Whisper: WhisperConfig{
			Binary: "whisper",
			Model:  "small",
		},
		Workspace: WorkspaceConfig{
			Root: "data",
		},
		Logging: *logger.DefaultConfig(),
	}
}

// ResolveAPIKey returns the API key for the configured provider, falling back
// to the provider-native environment variables. It fails before any external
// call is attempted so a missing credential never surfaces mid-pipeline.
func (c *Config) ResolveAPIKey() (string, error) {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey, nil
	}
	if key := os.Getenv("RECAPKIT_API_KEY"); key != "" {
		return key, nil
	}

	var native string
	switch c.Provider.Name {
	case "openai":
		native = "OPENAI_API_KEY"
	case "gemini":
		native = "GEMINI_API_KEY"
	}
	if native != "" {
		if key := os.Getenv(native); key != "" {
			return key, nil
		}
	}

	return "", fmt.Errorf("%w: set RECAPKIT_API_KEY (or %s), use --api-key, or add provider.api_key to the config file",
		errs.ErrMissingCredential, native)
}

// Validate checks structural configuration values. Credential presence is
// checked separately by ResolveAPIKey.
func (c *Config) Validate() error {
	if c.Provider.Name != "openai" && c.Provider.Name != "gemini" {
		return fmt.Errorf("unsupported provider: %s", c.Provider.Name)
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1")
	}
	if c.Whisper.Binary == "" {
		return fmt.Errorf("whisper binary is required")
	}
	if c.Workspace.Root == "" {
		return fmt.Errorf("workspace root is required")
	}
	return nil
}
