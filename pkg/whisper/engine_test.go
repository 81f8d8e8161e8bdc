package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recapkit/recapkit/pkg/errs"
)

// fakeExecutor records invocations and simulates the whisper binary by
// writing the expected output file
type fakeExecutor struct {
	lastName string
	lastArgs []string
	output   string
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.lastName = name
	f.lastArgs = args
	if f.err != nil {
		return "", f.err
	}

	// Mimic the engine: write {stem}.{format} into --output_dir.
	var outputDir, format string
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "--output_dir":
			outputDir = args[i+1]
		case "--output_format":
			format = args[i+1]
		}
	}
	stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	path := filepath.Join(outputDir, stem+"."+format)
	if err := os.WriteFile(path, []byte(f.output), 0o644); err != nil {
		return "", err
	}
	return "", nil
}

func writeAudioFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatalf("failed to write audio file: %v", err)
	}
	return path
}

func TestParseModelSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ModelSize
		wantErr bool
	}{
		{name: "tiny", input: "tiny", want: ModelTiny},
		{name: "base", input: "base", want: ModelBase},
		{name: "small", input: "small", want: ModelSmall},
		{name: "medium", input: "medium", want: ModelMedium},
		{name: "large", input: "large", want: ModelLarge},
		{name: "unknown", input: "huge", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseModelSize(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelSize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseModelSize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	tmpDir := t.TempDir()
	audioPath := writeAudioFile(t, tmpDir, "session.wav")

	executor := &fakeExecutor{output: "Hello world.\n"}
	engine := NewEngine("whisper", tmpDir, executor)

	result, err := engine.Transcribe(context.Background(), &TranscribeRequest{
		AudioPath: audioPath,
		Model:     ModelTiny,
		Language:  "en",
	})
	if err != nil {
		t.Fatalf("Transcribe() unexpected error: %v", err)
	}

	if result.Text != "Hello world." {
		t.Errorf("Text = %q, want %q", result.Text, "Hello world.")
	}
	if result.Model != ModelTiny {
		t.Errorf("Model = %v, want %v", result.Model, ModelTiny)
	}

	if executor.lastName != "whisper" {
		t.Errorf("executed binary = %q, want whisper", executor.lastName)
	}
	argStr := strings.Join(executor.lastArgs, " ")
	for _, want := range []string{"--model tiny", "--output_format txt", "--language en"} {
		if !strings.Contains(argStr, want) {
			t.Errorf("args %q missing %q", argStr, want)
		}
	}

	// Work file is removed after the transcript is read back.
	if _, err := os.Stat(filepath.Join(tmpDir, "session.txt")); !os.IsNotExist(err) {
		t.Error("engine work file was not cleaned up")
	}
}

func TestTranscribeTimestamps(t *testing.T) {
	tmpDir := t.TempDir()
	audioPath := writeAudioFile(t, tmpDir, "session.wav")

	executor := &fakeExecutor{output: "1\n00:00:00,000 --> 00:00:02,000\nHello world.\n"}
	engine := NewEngine("", tmpDir, executor)

	result, err := engine.Transcribe(context.Background(), &TranscribeRequest{
		AudioPath:  audioPath,
		Timestamps: true,
	})
	if err != nil {
		t.Fatalf("Transcribe() unexpected error: %v", err)
	}

	if !strings.Contains(strings.Join(executor.lastArgs, " "), "--output_format srt") {
		t.Errorf("args %v missing srt output format", executor.lastArgs)
	}
	if !strings.Contains(result.Text, "00:00:00,000 --> 00:00:02,000") {
		t.Errorf("Text %q missing timestamp markers", result.Text)
	}
	if result.Model != ModelSmall {
		t.Errorf("Model = %v, want default %v", result.Model, ModelSmall)
	}
}

func TestTranscribeEngineFailure(t *testing.T) {
	tmpDir := t.TempDir()
	audioPath := writeAudioFile(t, tmpDir, "session.wav")

	executor := &fakeExecutor{err: fmt.Errorf("command \"whisper\" failed: exit status 1")}
	engine := NewEngine("whisper", tmpDir, executor)

	_, err := engine.Transcribe(context.Background(), &TranscribeRequest{AudioPath: audioPath})
	if !errors.Is(err, errs.ErrExternalTool) {
		t.Errorf("Transcribe() error = %v, want ErrExternalTool", err)
	}
}

func TestTranscribeMissingAudio(t *testing.T) {
	executor := &fakeExecutor{}
	engine := NewEngine("whisper", t.TempDir(), executor)

	_, err := engine.Transcribe(context.Background(), &TranscribeRequest{AudioPath: "missing.wav"})
	if !errors.Is(err, errs.ErrMissingInput) {
		t.Errorf("Transcribe() error = %v, want ErrMissingInput", err)
	}
	if executor.lastName != "" {
		t.Error("engine was invoked despite missing input")
	}
}

func TestTranscribeMissingOutputFile(t *testing.T) {
	tmpDir := t.TempDir()
	audioPath := writeAudioFile(t, tmpDir, "session.wav")

	// Executor succeeds but never writes the expected output file.
	engine := NewEngine("whisper", tmpDir, noopExecutor{})

	_, err := engine.Transcribe(context.Background(), &TranscribeRequest{AudioPath: audioPath})
	if !errors.Is(err, errs.ErrExternalTool) {
		t.Errorf("Transcribe() error = %v, want ErrExternalTool", err)
	}
}

type noopExecutor struct{}

func (noopExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", nil
}
