package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/recapkit/recapkit/pkg/errs"
	"github.com/recapkit/recapkit/pkg/media"
	"github.com/recapkit/recapkit/pkg/summarizer"
	"github.com/recapkit/recapkit/pkg/whisper"
	"github.com/recapkit/recapkit/pkg/workspace"
)

// fakeExtractor validates against an allowlist and returns a prepared audio
// path without touching ffmpeg
type fakeExtractor struct {
	audioPath  string
	probed     bool
	prepared   bool
	probeErr   error
	prepareErr error
}

func (f *fakeExtractor) ValidateSource(filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%w: file does not exist: %s", errs.ErrMissingInput, filePath)
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".mov" && ext != ".mp4" && ext != ".mp3" {
		return fmt.Errorf("%w: unsupported file extension %q", errs.ErrMissingInput, ext)
	}
	return nil
}

func (f *fakeExtractor) Probe(filePath string) (*media.MediaInfo, error) {
	f.probed = true
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return &media.MediaInfo{FilePath: filePath, Duration: 90 * time.Second, IsVideo: true}, nil
}

func (f *fakeExtractor) PrepareAudio(filePath string) (string, bool, error) {
	f.prepared = true
	if f.prepareErr != nil {
		return "", false, f.prepareErr
	}
	return f.audioPath, true, nil
}

// fakeEngine returns a canned transcript
type fakeEngine struct {
	text   string
	called bool
	err    error
}

func (f *fakeEngine) Transcribe(ctx context.Context, req *whisper.TranscribeRequest) (*whisper.TranscribeResult, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	model := req.Model
	if model == "" {
		model = whisper.ModelSmall
	}
	return &whisper.TranscribeResult{Text: f.text, Model: model, ProcessTime: time.Second}, nil
}

// fakeSummarizer returns a canned summary
type fakeSummarizer struct {
	text   string
	called bool
	err    error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (*summarizer.SummaryResult, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return &summarizer.SummaryResult{
		Text:        f.text,
		Provider:    "fake",
		Model:       "fake-model",
		ChunkCount:  1,
		SourceChars: len(transcript),
		ProcessTime: time.Second,
	}, nil
}

func newTestPipeline(t *testing.T, engine *fakeEngine, sum summarizer.Summarizer) (*Pipeline, *fakeExtractor, *workspace.Workspace, string) {
	t.Helper()
	tmpDir := t.TempDir()

	sourcePath := filepath.Join(tmpDir, "session.mov")
	if err := os.WriteFile(sourcePath, []byte("video"), 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	audioPath := filepath.Join(tmpDir, "session_audio.wav")
	if err := os.WriteFile(audioPath, []byte("audio"), 0o644); err != nil {
		t.Fatalf("failed to write audio file: %v", err)
	}

	extractor := &fakeExtractor{audioPath: audioPath}
	ws := workspace.New(filepath.Join(tmpDir, "data"))
	return New(extractor, engine, sum, ws), extractor, ws, sourcePath
}

func TestRunTranscribeOnly(t *testing.T) {
	engine := &fakeEngine{text: "the transcript"}
	p, _, ws, sourcePath := newTestPipeline(t, engine, nil)

	result, err := p.Run(context.Background(), sourcePath, Options{Model: whisper.ModelTiny})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !engine.called {
		t.Error("engine was not invoked")
	}
	if result.SummaryPath != "" {
		t.Error("summary produced without --summarize")
	}

	content, err := os.ReadFile(result.TranscriptPath)
	if err != nil {
		t.Fatalf("failed to read transcript: %v", err)
	}
	if string(content) != "the transcript" {
		t.Errorf("transcript content = %q", content)
	}

	base := filepath.Base(result.TranscriptPath)
	if !strings.HasPrefix(base, "session_transcript_") || !strings.HasSuffix(base, ".txt") {
		t.Errorf("transcript filename %q does not follow convention", base)
	}
	if filepath.Dir(result.TranscriptPath) != ws.TranscriptsDir() {
		t.Errorf("transcript written outside transcripts dir: %s", result.TranscriptPath)
	}

	if filepath.Base(result.MetadataPath) != "session_metadata.json" {
		t.Errorf("metadata filename = %s", filepath.Base(result.MetadataPath))
	}
}

func TestRunWithSummary(t *testing.T) {
	engine := &fakeEngine{text: "the transcript"}
	sum := &fakeSummarizer{text: "🧠 Key Points\n...\n💡 Key Learnings\n...\n🤔 Reflection Questions\n...\n✅ Action Items\n..."}
	p, _, ws, sourcePath := newTestPipeline(t, engine, sum)

	result, err := p.Run(context.Background(), sourcePath, Options{Summarize: true})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !sum.called {
		t.Error("summarizer was not invoked")
	}
	if result.SummaryPath == "" {
		t.Fatal("no summary path in result")
	}
	if filepath.Dir(result.SummaryPath) != ws.SummariesDir() {
		t.Errorf("summary written outside summaries dir: %s", result.SummaryPath)
	}
	base := filepath.Base(result.SummaryPath)
	if !strings.HasPrefix(base, "session_summary_") {
		t.Errorf("summary filename %q does not follow convention", base)
	}

	metadata, err := os.ReadFile(result.MetadataPath)
	if err != nil {
		t.Fatalf("failed to read metadata: %v", err)
	}
	for _, want := range []string{"fake-model", "whisper_model", "session.mov"} {
		if !strings.Contains(string(metadata), want) {
			t.Errorf("metadata missing %q:\n%s", want, metadata)
		}
	}
}

func TestRunMissingInputBeforeExternalCalls(t *testing.T) {
	engine := &fakeEngine{text: "irrelevant"}
	p, extractor, _, _ := newTestPipeline(t, engine, nil)

	_, err := p.Run(context.Background(), "nope.mov", Options{})
	if !errors.Is(err, errs.ErrMissingInput) {
		t.Fatalf("Run() error = %v, want ErrMissingInput", err)
	}
	if extractor.probed || extractor.prepared || engine.called {
		t.Error("external stages ran despite missing input")
	}
}

func TestRunUnsupportedExtension(t *testing.T) {
	engine := &fakeEngine{text: "irrelevant"}
	p, extractor, _, _ := newTestPipeline(t, engine, nil)

	badPath := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(badPath, []byte("text"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := p.Run(context.Background(), badPath, Options{})
	if !errors.Is(err, errs.ErrMissingInput) {
		t.Fatalf("Run() error = %v, want ErrMissingInput", err)
	}
	if extractor.probed || engine.called {
		t.Error("external stages ran despite unsupported extension")
	}
}

func TestRunTranscriptionFailureIsFatal(t *testing.T) {
	engine := &fakeEngine{err: fmt.Errorf("%w: whisper exited 1", errs.ErrExternalTool)}
	p, _, ws, sourcePath := newTestPipeline(t, engine, nil)

	_, err := p.Run(context.Background(), sourcePath, Options{})
	if !errors.Is(err, errs.ErrExternalTool) {
		t.Fatalf("Run() error = %v, want ErrExternalTool", err)
	}

	entries, _ := os.ReadDir(ws.TranscriptsDir())
	if len(entries) != 0 {
		t.Error("transcript written despite engine failure")
	}
}

func TestRunSummaryFailureKeepsTranscript(t *testing.T) {
	engine := &fakeEngine{text: "the transcript"}
	sum := &fakeSummarizer{err: fmt.Errorf("%w: service down", errs.ErrExternalTool)}
	p, _, ws, sourcePath := newTestPipeline(t, engine, sum)

	_, err := p.Run(context.Background(), sourcePath, Options{Summarize: true})
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if !strings.Contains(err.Error(), "summarization stage") {
		t.Errorf("error does not name the failing stage: %v", err)
	}

	// The stage-one artifact survives the stage-two failure.
	entries, readErr := os.ReadDir(ws.TranscriptsDir())
	if readErr != nil {
		t.Fatalf("failed to read transcripts dir: %v", readErr)
	}
	if len(entries) != 1 {
		t.Fatalf("transcript count = %d, want 1", len(entries))
	}

	summaries, _ := os.ReadDir(ws.SummariesDir())
	if len(summaries) != 0 {
		t.Error("summary written despite summarizer failure")
	}
}

func TestRunSummarizeWithoutSummarizer(t *testing.T) {
	engine := &fakeEngine{text: "the transcript"}
	p, _, _, sourcePath := newTestPipeline(t, engine, nil)

	_, err := p.Run(context.Background(), sourcePath, Options{Summarize: true})
	if err == nil {
		t.Fatal("Run() expected error when summarizer is nil")
	}
	if engine.called {
		t.Error("engine ran despite configuration error")
	}
}
