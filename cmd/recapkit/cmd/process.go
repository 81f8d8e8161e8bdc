package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recapkit/recapkit/pkg/config"
	"github.com/recapkit/recapkit/pkg/logger"
	"github.com/recapkit/recapkit/pkg/media"
	"github.com/recapkit/recapkit/pkg/pipeline"
	"github.com/recapkit/recapkit/pkg/providers"
	"github.com/recapkit/recapkit/pkg/providers/gemini"
	"github.com/recapkit/recapkit/pkg/providers/openai"
	"github.com/recapkit/recapkit/pkg/summarizer"
	"github.com/recapkit/recapkit/pkg/whisper"
	"github.com/recapkit/recapkit/pkg/workspace"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process [media-file]",
	Short: "Transcribe a recording and summarize the transcript",
	Long: `Process a recorded session end-to-end: extract the audio track,
transcribe it with the whisper engine, and summarize the transcript into
Key Points, Key Learnings, Reflection Questions, and Action Items.

The transcript, summary, and a metadata record are written into the
workspace directory. Each stage failure is fatal to the run; artifacts
already written by earlier stages are left in place.

Examples:
  # Process a video recording
  recapkit process lecture.mp4

  # Transcribe only, keeping the extracted audio
  recapkit process lecture.mp4 --summarize=false --keep-temp

  # Use a larger whisper model and a language hint
  recapkit process interview.mp3 --model medium --language en

  # Summarize with Gemini instead of OpenAI
  recapkit process talk.mov --provider gemini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	addPipelineFlags(processCmd)
}

// addPipelineFlags registers the flags shared by process and watch
func addPipelineFlags(cmd *cobra.Command) {
	// Transcription options
	cmd.Flags().String("model", "small", "whisper model size (tiny, base, small, medium, large)")
	cmd.Flags().String("language", "", "language hint for the whisper engine (default: auto-detect)")
	cmd.Flags().Bool("timestamps", false, "include segment timestamps in the transcript")

	// Summarization options
	cmd.Flags().Bool("summarize", true, "summarize the transcript after transcribing")
	cmd.Flags().String("summary-model", "", "text-generation model (default: provider default)")
	cmd.Flags().String("provider", "openai", "text-generation provider (openai, gemini)")

	// Workspace options
	cmd.Flags().String("workspace", "", "workspace root directory (default: data)")
	cmd.Flags().Bool("keep-temp", false, "keep extracted audio files after the run")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")
	sourcePath := args[0]

	log.Info().Str("file", sourcePath).Msg("Starting processing")

	p, opts, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, err := p.Run(context.Background(), sourcePath, opts)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(startTime)).Msg("Processing failed")
		return err
	}

	printResult(result)
	return nil
}

// buildPipeline assembles a pipeline and its run options from the loaded
// configuration and the command's flags. When summarization is requested the
// provider credential is resolved here, before any external call.
func buildPipeline(cmd *cobra.Command) (*pipeline.Pipeline, pipeline.Options, error) {
	log := logger.WithComponent("process")

	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	log.Debug().Interface("config", cfg).Msg("Loaded configuration")

	modelSize, err := whisper.ParseModelSize(cfg.Whisper.Model)
	if err != nil {
		return nil, pipeline.Options{}, err
	}

	summarize, _ := cmd.Flags().GetBool("summarize")

	opts := pipeline.Options{
		Model:      modelSize,
		Language:   cfg.Whisper.Language,
		Timestamps: cfg.Whisper.Timestamps,
		Summarize:  summarize,
		KeepTemp:   cfg.Workspace.KeepTemp,
	}

	ws := workspace.New(cfg.Workspace.Root)

	var sum summarizer.Summarizer
	if summarize {
		provider, err := newCompletionProvider(cfg)
		if err != nil {
			return nil, pipeline.Options{}, err
		}
		log.Info().Str("provider", provider.Name()).Str("model", provider.Model()).Msg("Initialized text-generation provider")

		sum = summarizer.NewSummarizer(provider,
			summarizer.WithCompletionOptions(providers.CompletionOptions{
				Temperature: cfg.Provider.Temperature,
				MaxTokens:   cfg.Provider.MaxTokens,
			}),
		)
	}

	p := pipeline.New(
		media.NewExtractor(ws.TempDir()),
		whisper.NewEngine(cfg.Whisper.Binary, ws.TempDir(), nil),
		sum,
		ws,
	)
	return p, opts, nil
}

// loadAppConfig loads the configuration file and applies flag overrides.
// Flags that the user did not set leave the file and env values in place.
func loadAppConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}

	if key := viper.GetString("provider.api_key"); key != "" {
		cfg.Provider.APIKey = key
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider.Name, _ = flags.GetString("provider")
	}
	if flags.Changed("summary-model") {
		cfg.Provider.Model, _ = flags.GetString("summary-model")
	}
	if flags.Changed("model") {
		cfg.Whisper.Model, _ = flags.GetString("model")
	}
	if flags.Changed("language") {
		cfg.Whisper.Language, _ = flags.GetString("language")
	}
	if flags.Changed("timestamps") {
		cfg.Whisper.Timestamps, _ = flags.GetBool("timestamps")
	}
	if flags.Changed("workspace") {
		cfg.Workspace.Root, _ = flags.GetString("workspace")
	}
	if flags.Changed("keep-temp") {
		cfg.Workspace.KeepTemp, _ = flags.GetBool("keep-temp")
	}

	return cfg, nil
}

// newCompletionProvider resolves the credential and constructs the configured
// text-generation provider. A missing credential fails here, before any
// network traffic.
func newCompletionProvider(cfg *config.Config) (providers.CompletionProvider, error) {
	log := logger.WithComponent("provider")

	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.Provider.Name).Msg("No credential configured")
		return nil, err
	}

	var provider providers.CompletionProvider
	switch cfg.Provider.Name {
	case "openai":
		var opts []openai.ProviderOption
		if cfg.Provider.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Provider.Model))
		}
		provider = openai.NewProvider(apiKey, opts...)
	case "gemini":
		var opts []gemini.ProviderOption
		if cfg.Provider.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Provider.Model))
		}
		provider = gemini.NewProvider(apiKey, opts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider.Name)
	}

	if err := provider.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("provider validation failed: %w", err)
	}
	return provider, nil
}

func printResult(result *pipeline.Result) {
	fmt.Printf("✓ Processed %s in %v\n", filepath.Base(result.Source), result.ProcessTime.Round(time.Second))
	fmt.Printf("  Transcript: %s (%d characters)\n", result.TranscriptPath, result.TranscriptChars)
	if result.SummaryPath != "" {
		fmt.Printf("  Summary: %s (%d characters)\n", result.SummaryPath, result.SummaryChars)
	}
	fmt.Printf("  Metadata: %s\n", result.MetadataPath)
	if result.MediaDuration > 0 {
		fmt.Printf("  Media duration: %v\n", result.MediaDuration.Round(time.Second))
	}
}
