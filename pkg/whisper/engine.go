package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/recapkit/recapkit/pkg/errs"
	"github.com/recapkit/recapkit/pkg/logger"
)

// EngineImpl invokes the whisper command-line engine. The engine writes its
// output next to a work directory; the result text is read back and the work
// files removed, so callers only ever see the returned transcript.
type EngineImpl struct {
	binary   string
	workDir  string
	executor CommandExecutor
}

// NewEngine creates a whisper engine runner. binary is the whisper executable
// name or path; workDir receives the engine's intermediate output files.
func NewEngine(binary, workDir string, executor CommandExecutor) *EngineImpl {
	if binary == "" {
		binary = "whisper"
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	if executor == nil {
		executor = NewExecutor()
	}
	return &EngineImpl{
		binary:   binary,
		workDir:  workDir,
		executor: executor,
	}
}

// Transcribe runs the engine over the audio file and returns the transcript.
// A failure is fatal to the run; there is no retry.
func (e *EngineImpl) Transcribe(ctx context.Context, req *TranscribeRequest) (*TranscribeResult, error) {
	log := logger.WithComponent("whisper").WithField("file", filepath.Base(req.AudioPath))

	if _, err := os.Stat(req.AudioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: audio file does not exist: %s", errs.ErrMissingInput, req.AudioPath)
	}

	model := req.Model
	if model == "" {
		model = ModelSmall
	}

	outputFormat := "txt"
	if req.Timestamps {
		outputFormat = "srt"
	}

	if err := os.MkdirAll(e.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	args := []string{
		req.AudioPath,
		"--model", string(model),
		"--output_format", outputFormat,
		"--output_dir", e.workDir,
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}

	log.Info().
		Str("model", string(model)).
		Str("output_format", outputFormat).
		Str("language", req.Language).
		Msg("Running whisper transcription")

	startTime := time.Now()
	if _, err := e.executor.Execute(ctx, e.binary, args...); err != nil {
		return nil, fmt.Errorf("%w: whisper transcription failed: %v", errs.ErrExternalTool, err)
	}
	processTime := time.Since(startTime)

	// The engine names its output after the audio file's stem.
	stem := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	outputPath := filepath.Join(e.workDir, stem+"."+outputFormat)

	content, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: expected transcript file not found: %s", errs.ErrExternalTool, outputPath)
	}
	_ = os.Remove(outputPath)

	text := strings.TrimSpace(string(content))
	log.Info().
		Dur("process_time", processTime).
		Int("text_length", len(text)).
		Msg("Transcription completed")

	return &TranscribeResult{
		Text:        text,
		Model:       model,
		ProcessTime: processTime,
	}, nil
}
