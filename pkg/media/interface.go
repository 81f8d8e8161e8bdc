package media

import "time"

// MediaInfo contains metadata about a source media file
type MediaInfo struct {
	FilePath   string
	Duration   time.Duration
	SampleRate int
	Channels   int
	Size       int64
	IsVideo    bool
}

// Extractor prepares source media for the speech-recognition engine
type Extractor interface {
	// ValidateSource checks that the path exists and has a supported extension
	ValidateSource(filePath string) error

	// Probe extracts metadata from a media file
	Probe(filePath string) (*MediaInfo, error)

	// PrepareAudio returns a path to an audio file suitable for transcription.
	// Video sources are converted into a temporary WAV file; audio sources are
	// returned as-is. The second return value reports whether a temporary file
	// was created and should be cleaned up by the caller.
	PrepareAudio(filePath string) (string, bool, error)
}
