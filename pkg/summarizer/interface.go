package summarizer

import (
	"context"
	"time"
)

// SummaryResult is the structured summary produced from one transcript
type SummaryResult struct {
	// Text is the four-section summary
	Text string

	// Provider and Model identify the service that produced the text
	Provider string
	Model    string

	// ChunkCount is the number of transcript chunks sent to the service
	ChunkCount int

	// SourceChars is the length of the transcript text
	SourceChars int

	// ProcessTime is the wall-clock time spent on service calls
	ProcessTime time.Duration
}

// Summarizer turns transcript text into a four-section summary
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*SummaryResult, error)
}
