package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles configuration loading and management
type Loader struct {
	configPath string
	viper      *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader(configPath string) *Loader {
	v := viper.New()

	v.SetEnvPrefix("RECAPKIT")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".recapkit")
		v.SetConfigType("yaml")
	}

	return &Loader{
		configPath: configPath,
		viper:      v,
	}
}

// Load reads and returns the configuration
func (l *Loader) Load() (*Config, error) {
	// A local .env file may carry the API key, matching the provider CLIs.
	// Missing file is fine; the process environment still applies.
	_ = godotenv.Load()

	l.setDefaults()

	if err := l.viper.ReadInConfig(); err != nil {
		// Config file not found is not an error - defaults and env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// GetConfigFile returns the path to the config file being used
func (l *Loader) GetConfigFile() string {
	return l.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.viper.SetDefault("provider.name", defaults.Provider.Name)
	l.viper.SetDefault("provider.model", defaults.Provider.Model)
	l.viper.SetDefault("provider.temperature", defaults.Provider.Temperature)
	l.viper.SetDefault("provider.max_tokens", defaults.Provider.MaxTokens)
	l.viper.SetDefault("provider.timeout", defaults.Provider.Timeout)

	l.viper.SetDefault("whisper.binary", defaults.Whisper.Binary)
	l.viper.SetDefault("whisper.model", defaults.Whisper.Model)
	l.viper.SetDefault("whisper.language", defaults.Whisper.Language)
	l.viper.SetDefault("whisper.timestamps", defaults.Whisper.Timestamps)

	l.viper.SetDefault("workspace.root", defaults.Workspace.Root)
	l.viper.SetDefault("workspace.keep_temp", defaults.Workspace.KeepTemp)

	l.viper.SetDefault("logging.level", defaults.Logging.Level)
	l.viper.SetDefault("logging.format", defaults.Logging.Format)
	l.viper.SetDefault("logging.output", defaults.Logging.Output)
}
