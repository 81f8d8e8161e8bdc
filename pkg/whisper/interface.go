package whisper

import (
	"context"
	"fmt"
	"time"
)

// ModelSize selects a whisper model variant, trading latency for accuracy
type ModelSize string

const (
	ModelTiny   ModelSize = "tiny"
	ModelBase   ModelSize = "base"
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
)

// ParseModelSize validates a model-size name
func ParseModelSize(name string) (ModelSize, error) {
	switch ModelSize(name) {
	case ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge:
		return ModelSize(name), nil
	}
	return "", fmt.Errorf("unknown whisper model %q (expected tiny, base, small, medium or large)", name)
}

// TranscribeRequest describes a single transcription invocation
type TranscribeRequest struct {
	// AudioPath is the audio file handed to the engine
	AudioPath string

	// Model is the whisper model size
	Model ModelSize

	// Language is an optional hint; empty means auto-detect
	Language string

	// Timestamps requests segment timestamps in the transcript
	Timestamps bool
}

// TranscribeResult is the transcript returned by the engine
type TranscribeResult struct {
	// Text is the plain transcript, with timestamp markers when requested
	Text string

	// Model is the model size that produced the text
	Model ModelSize

	// ProcessTime is the wall-clock engine runtime
	ProcessTime time.Duration
}

// Engine invokes the external speech-recognition engine
type Engine interface {
	Transcribe(ctx context.Context, req *TranscribeRequest) (*TranscribeResult, error)
}

// CommandExecutor runs external commands; extracted so tests can fake the
// whisper binary
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
