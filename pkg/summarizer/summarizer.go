package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recapkit/recapkit/pkg/errs"
	"github.com/recapkit/recapkit/pkg/logger"
	"github.com/recapkit/recapkit/pkg/providers"
)

// SummarizerImpl implements the Summarizer interface on top of a completion
// provider
type SummarizerImpl struct {
	provider  providers.CompletionProvider
	options   providers.CompletionOptions
	maxTokens int
}

// NewSummarizer creates a summarizer bound to a completion provider
func NewSummarizer(provider providers.CompletionProvider, options ...SummarizerOption) *SummarizerImpl {
	s := &SummarizerImpl{
		provider: provider,
		options: providers.CompletionOptions{
			Temperature: 0.3,
			MaxTokens:   1024,
		},
		maxTokens: maxChunkTokens,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// SummarizerOption allows customizing the summarizer
type SummarizerOption func(*SummarizerImpl)

// WithCompletionOptions sets the options passed to every provider call
func WithCompletionOptions(options providers.CompletionOptions) SummarizerOption {
	return func(s *SummarizerImpl) {
		s.options = options
	}
}

// WithMaxChunkTokens overrides the transcript chunking threshold
func WithMaxChunkTokens(tokens int) SummarizerOption {
	return func(s *SummarizerImpl) {
		if tokens > 0 {
			s.maxTokens = tokens
		}
	}
}

// Summarize produces a four-section summary of the transcript. Long
// transcripts are summarized chunk by chunk, sequentially, and consolidated
// with a final call. The result always carries all four section headers.
func (s *SummarizerImpl) Summarize(ctx context.Context, transcript string) (*SummaryResult, error) {
	log := logger.WithComponent("summarizer").WithField("provider", s.provider.Name())

	text := strings.TrimSpace(transcript)
	if text == "" {
		return nil, fmt.Errorf("%w: nothing to summarize", errs.ErrEmptyTranscript)
	}

	chunks := chunkText(text, s.maxTokens)
	log.Info().
		Str("model", s.provider.Model()).
		Int("chunks", len(chunks)).
		Int("transcript_chars", len(text)).
		Msg("Starting summarization")

	startTime := time.Now()

	var response string
	var err error
	if len(chunks) == 1 {
		response, err = s.summarizeChunk(ctx, chunks[0])
	} else {
		response, err = s.summarizeChunked(ctx, chunks)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: summarization failed: %v", errs.ErrExternalTool, err)
	}

	processTime := time.Since(startTime)
	normalized := NormalizeSections(response)

	log.Info().
		Dur("process_time", processTime).
		Int("summary_chars", len(normalized)).
		Msg("Summarization completed")

	return &SummaryResult{
		Text:        normalized,
		Provider:    s.provider.Name(),
		Model:       s.provider.Model(),
		ChunkCount:  len(chunks),
		SourceChars: len(text),
		ProcessTime: processTime,
	}, nil
}

// summarizeChunk summarizes a single chunk of transcript text
func (s *SummarizerImpl) summarizeChunk(ctx context.Context, chunk string) (string, error) {
	return s.provider.Complete(ctx, &providers.CompletionRequest{
		SystemPrompt: systemPrompt,
		Prompt:       fmt.Sprintf(summarizationPrompt, chunk),
		Options:      s.options,
	})
}

// summarizeChunked summarizes each chunk in order, then consolidates the
// partial summaries into a single four-section summary
func (s *SummarizerImpl) summarizeChunked(ctx context.Context, chunks []string) (string, error) {
	log := logger.WithComponent("summarizer")

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		log.Debug().Int("chunk", i+1).Int("total", len(chunks)).Msg("Summarizing transcript chunk")
		partial, err := s.summarizeChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		partials = append(partials, fmt.Sprintf("Part %d:\n%s", i+1, partial))
	}

	combined := strings.Join(partials, "\n\n")
	return s.provider.Complete(ctx, &providers.CompletionRequest{
		SystemPrompt: systemPrompt,
		Prompt:       fmt.Sprintf(consolidationPrompt, combined),
		Options:      s.options,
	})
}

// ExtractTranscriptText pulls the main transcript text out of a transcript
// file's content. Formatted transcripts carry the spoken text between a FULL
// TEXT marker and a SEGMENTS marker; plain files are the transcript as-is.
func ExtractTranscriptText(content string) string {
	const (
		startMarker = "=== FULL TEXT ==="
		endMarker   = "=== SEGMENTS WITH TIMESTAMPS ==="
	)

	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start >= 0 && end > start {
		return strings.TrimSpace(content[start+len(startMarker) : end])
	}
	return strings.TrimSpace(content)
}
