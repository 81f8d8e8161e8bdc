package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recapkit/recapkit/pkg/logger"
	"github.com/recapkit/recapkit/pkg/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and process new media files",
	Long: `Watch a directory for new media files and run the processing
pipeline on each one as it arrives. Files are handled one at a time, in
arrival order. A failed file is logged and skipped; the watch continues.

Stop with Ctrl+C.

Examples:
  # Watch the workspace input directory
  recapkit watch data/input

  # Watch with transcription-only processing
  recapkit watch ~/recordings --summarize=false`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addPipelineFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("watch")
	dir := args[0]

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("watch directory does not exist: %s", dir)
	}

	p, opts, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	w, err := watcher.New(dir, func(ctx context.Context, filePath string) error {
		result, err := p.Run(ctx, filePath, opts)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("Watch stopped")
	return nil
}
