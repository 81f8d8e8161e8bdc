package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recapkit/recapkit/pkg/config"
	"github.com/recapkit/recapkit/pkg/errs"
	"github.com/recapkit/recapkit/pkg/logger"
	"github.com/recapkit/recapkit/pkg/providers"
	"github.com/recapkit/recapkit/pkg/summarizer"
	"github.com/recapkit/recapkit/pkg/workspace"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [transcript-file]",
	Short: "Summarize an existing transcript",
	Long: `Summarize a transcript file into Key Points, Key Learnings,
Reflection Questions, and Action Items without re-running transcription.

The input is a plain-text transcript, typically one produced by the
process command. Timestamped transcripts are handled; only the full text
portion is summarized.

Examples:
  # Summarize into the workspace summaries directory
  recapkit summarize data/transcripts/lecture_transcript_20240315_093045.txt

  # Write the summary to an explicit path
  recapkit summarize transcript.txt -o summary.txt

  # Use Gemini with a specific model
  recapkit summarize transcript.txt --provider gemini --model gemini-2.5-pro`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringP("output", "o", "", "output file path (default: workspace summaries directory)")
	summarizeCmd.Flags().String("model", "", "text-generation model (default: provider default)")
	summarizeCmd.Flags().String("provider", "openai", "text-generation provider (openai, gemini)")
	summarizeCmd.Flags().String("workspace", "", "workspace root directory (default: data)")
}

// transcriptSuffix strips the artifact naming convention from a transcript
// filename so the summary keeps the original session stem.
var transcriptSuffix = regexp.MustCompile(`_transcript(_\d{8}_\d{6})?$`)

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summarize")
	transcriptPath := args[0]

	cfg, err := loadSummarizeConfig(cmd)
	if err != nil {
		return err
	}

	// Credential resolution happens before the transcript is even read.
	provider, err := newCompletionProvider(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("provider", provider.Name()).Str("model", provider.Model()).Msg("Initialized text-generation provider")

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: transcript file does not exist: %s", errs.ErrMissingInput, transcriptPath)
		}
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	text := summarizer.ExtractTranscriptText(string(data))

	sum := summarizer.NewSummarizer(provider,
		summarizer.WithCompletionOptions(providers.CompletionOptions{
			Temperature: cfg.Provider.Temperature,
			MaxTokens:   cfg.Provider.MaxTokens,
		}),
	)

	ctx := context.Background()
	if cfg.Provider.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Provider.Timeout)
		defer cancel()
	}

	log.Info().Str("file", filepath.Base(transcriptPath)).Int("chars", len(text)).Msg("Starting summarization")
	result, err := sum.Summarize(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("Summarization failed")
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(outputPath, []byte(result.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	} else {
		ws := workspace.New(cfg.Workspace.Root)
		if err := ws.EnsureDirs(); err != nil {
			return err
		}
		stem := transcriptSuffix.ReplaceAllString(workspace.Stem(transcriptPath), "")
		outputPath, err = ws.WriteArtifact(stem, workspace.KindSummary, result.Text, time.Now())
		if err != nil {
			return err
		}
	}

	log.Info().
		Str("output", outputPath).
		Int("chunks", result.ChunkCount).
		Dur("processing_time", result.ProcessTime).
		Msg("Summarization completed")

	fmt.Printf("✓ Summarized %s with %s/%s\n", filepath.Base(transcriptPath), result.Provider, result.Model)
	fmt.Printf("  Output: %s\n", outputPath)
	fmt.Printf("  Chunks: %d\n", result.ChunkCount)
	fmt.Printf("  Summary length: %d characters\n", len(result.Text))
	return nil
}

// loadSummarizeConfig loads configuration and applies this command's flag
// overrides. Unlike process, --model here selects the text-generation model.
func loadSummarizeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}

	if key := viper.GetString("provider.api_key"); key != "" {
		cfg.Provider.APIKey = strings.TrimSpace(key)
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider.Name, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		cfg.Provider.Model, _ = flags.GetString("model")
	}
	if flags.Changed("workspace") {
		cfg.Workspace.Root, _ = flags.GetString("workspace")
	}

	return cfg, nil
}
