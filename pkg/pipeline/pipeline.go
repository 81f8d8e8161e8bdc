// Package pipeline runs the two-stage batch pipeline: extract an audio
// track, transcribe it, route the transcript into the workspace, and
// optionally summarize the transcript. One source file is processed
// end-to-end at a time; every error is fatal to the current run and leaves
// prior-stage artifacts intact on disk.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/recapkit/recapkit/pkg/logger"
	"github.com/recapkit/recapkit/pkg/media"
	"github.com/recapkit/recapkit/pkg/summarizer"
	"github.com/recapkit/recapkit/pkg/whisper"
	"github.com/recapkit/recapkit/pkg/workspace"
)

// Options configures a single pipeline run
type Options struct {
	// Model is the whisper model size
	Model whisper.ModelSize

	// Language is an optional hint passed to the engine
	Language string

	// Timestamps requests segment timestamps in the transcript
	Timestamps bool

	// Summarize runs stage two after transcription
	Summarize bool

	// KeepTemp retains extracted audio files after the run
	KeepTemp bool
}

// Result reports the artifacts written by a run
type Result struct {
	Source         string
	TranscriptPath string
	SummaryPath    string
	MetadataPath   string

	TranscriptChars int
	SummaryChars    int
	MediaDuration   time.Duration
	ProcessTime     time.Duration
}

// Pipeline wires the extractor, engine, summarizer and workspace together
type Pipeline struct {
	extractor  media.Extractor
	engine     whisper.Engine
	summarizer summarizer.Summarizer
	workspace  *workspace.Workspace
	now        func() time.Time
}

// New creates a pipeline. The summarizer may be nil when runs never request
// summarization.
func New(extractor media.Extractor, engine whisper.Engine, sum summarizer.Summarizer, ws *workspace.Workspace) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		engine:     engine,
		summarizer: sum,
		workspace:  ws,
		now:        time.Now,
	}
}

// Run processes one source file end-to-end
func (p *Pipeline) Run(ctx context.Context, sourcePath string, opts Options) (*Result, error) {
	log := logger.WithComponent("pipeline").WithField("file", filepath.Base(sourcePath))
	startTime := p.now()

	// Input validation happens before any external call.
	if err := p.extractor.ValidateSource(sourcePath); err != nil {
		return nil, err
	}
	if opts.Summarize && p.summarizer == nil {
		return nil, fmt.Errorf("summarization requested but no summarizer configured")
	}

	if err := p.workspace.EnsureDirs(); err != nil {
		return nil, err
	}

	stem := workspace.Stem(sourcePath)
	result := &Result{Source: sourcePath}

	info, err := p.extractor.Probe(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("probe stage: %w", err)
	}
	result.MediaDuration = info.Duration

	log.Info().
		Dur("media_duration", info.Duration).
		Bool("is_video", info.IsVideo).
		Str("model", string(opts.Model)).
		Msg("Starting pipeline run")

	// Stage one: audio extraction.
	audioPath, isTemp, err := p.extractor.PrepareAudio(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("extraction stage: %w", err)
	}
	if isTemp && !opts.KeepTemp {
		defer func() {
			log.Debug().Str("audio_path", audioPath).Msg("Removing temporary audio file")
			_ = os.Remove(audioPath)
		}()
	}

	// Stage one: transcription.
	transcribeStart := p.now()
	transcript, err := p.engine.Transcribe(ctx, &whisper.TranscribeRequest{
		AudioPath:  audioPath,
		Model:      opts.Model,
		Language:   opts.Language,
		Timestamps: opts.Timestamps,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription stage: %w", err)
	}
	transcribeTime := p.now().Sub(transcribeStart)

	transcriptPath, err := p.workspace.WriteArtifact(stem, workspace.KindTranscript, transcript.Text, p.now())
	if err != nil {
		return nil, fmt.Errorf("transcription stage: %w", err)
	}
	result.TranscriptPath = transcriptPath
	result.TranscriptChars = len(transcript.Text)

	record := &workspace.MetadataRecord{
		Source:               filepath.Base(sourcePath),
		CreatedAt:            p.now(),
		WhisperModel:         string(transcript.Model),
		TranscriptFile:       filepath.Base(transcriptPath),
		MediaDurationSeconds: info.Duration.Seconds(),
		TranscribeSeconds:    transcribeTime.Seconds(),
	}

	// Stage two: summarization. A failure here still leaves the transcript
	// and its metadata on disk.
	if opts.Summarize {
		summary, err := p.summarizer.Summarize(ctx, summarizer.ExtractTranscriptText(transcript.Text))
		if err != nil {
			if _, werr := p.workspace.WriteMetadata(stem, record); werr != nil {
				log.Warn().Err(werr).Msg("Failed to write metadata record")
			}
			return nil, fmt.Errorf("summarization stage: %w", err)
		}

		summaryPath, err := p.workspace.WriteArtifact(stem, workspace.KindSummary, summary.Text, p.now())
		if err != nil {
			return nil, fmt.Errorf("summarization stage: %w", err)
		}
		result.SummaryPath = summaryPath
		result.SummaryChars = len(summary.Text)

		record.SummaryProvider = summary.Provider
		record.SummaryModel = summary.Model
		record.SummaryFile = filepath.Base(summaryPath)
		record.SummarizeSeconds = summary.ProcessTime.Seconds()
	}

	metadataPath, err := p.workspace.WriteMetadata(stem, record)
	if err != nil {
		return nil, err
	}
	result.MetadataPath = metadataPath
	result.ProcessTime = p.now().Sub(startTime)

	log.Info().
		Str("transcript", result.TranscriptPath).
		Str("summary", result.SummaryPath).
		Dur("process_time", result.ProcessTime).
		Msg("Pipeline run completed")

	return result, nil
}
