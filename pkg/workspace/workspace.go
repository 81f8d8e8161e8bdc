// Package workspace manages the fixed output directory layout and the
// timestamped artifact filenames. Artifacts are write-once: filenames embed
// the source stem and a creation timestamp, so repeated runs never overwrite
// prior outputs. Two writes for the same source within the same second can
// collide; that is a documented limitation of the naming convention.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/recapkit/recapkit/pkg/logger"
)

// timestampLayout renders timestamps as YYYYMMDD_HHMMSS
const timestampLayout = "20060102_150405"

// ArtifactKind names the kind embedded in an artifact filename
type ArtifactKind string

const (
	KindTranscript ArtifactKind = "transcript"
	KindSummary    ArtifactKind = "summary"
)

// Workspace is the fixed directory tree rooted at Root
type Workspace struct {
	root string
}

// New creates a workspace rooted at root
func New(root string) *Workspace {
	if root == "" {
		root = "data"
	}
	return &Workspace{root: root}
}

// Root returns the workspace root directory
func (w *Workspace) Root() string { return w.root }

// InputDir returns the conventional location for source media
func (w *Workspace) InputDir() string { return filepath.Join(w.root, "input") }

// TranscriptsDir returns the transcript output directory
func (w *Workspace) TranscriptsDir() string { return filepath.Join(w.root, "transcripts") }

// SummariesDir returns the summary output directory
func (w *Workspace) SummariesDir() string { return filepath.Join(w.root, "summaries") }

// TempDir returns the directory for temporary audio files
func (w *Workspace) TempDir() string { return filepath.Join(w.root, "temp") }

// MetadataDir returns the metadata record directory
func (w *Workspace) MetadataDir() string { return filepath.Join(w.root, "metadata") }

// EnsureDirs creates the full directory tree if absent
func (w *Workspace) EnsureDirs() error {
	for _, dir := range []string{
		w.InputDir(),
		w.TranscriptsDir(),
		w.SummariesDir(),
		w.TempDir(),
		w.MetadataDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Stem returns the source identifier used in artifact filenames
func Stem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ArtifactName computes the conventional filename for an artifact:
// {stem}_{kind}_{YYYYMMDD_HHMMSS}.txt
func ArtifactName(stem string, kind ArtifactKind, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.txt", stem, kind, at.Format(timestampLayout))
}

// WriteArtifact writes content under the directory for kind, naming the file
// from the source stem and the given timestamp, and returns the written path
func (w *Workspace) WriteArtifact(stem string, kind ArtifactKind, content string, at time.Time) (string, error) {
	log := logger.WithComponent("workspace").WithField("stem", stem)

	var dir string
	switch kind {
	case KindTranscript:
		dir = w.TranscriptsDir()
	case KindSummary:
		dir = w.SummariesDir()
	default:
		return "", fmt.Errorf("unknown artifact kind: %s", kind)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ArtifactName(stem, kind, at))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", kind, err)
	}

	log.Info().
		Str("kind", string(kind)).
		Str("path", path).
		Int("size_bytes", len(content)).
		Msg("Artifact written")

	return path, nil
}

// MetadataRecord captures which models processed a source and how long each
// stage took. It is associated with the run's artifacts by filename stem.
type MetadataRecord struct {
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`

	WhisperModel    string `json:"whisper_model,omitempty"`
	SummaryProvider string `json:"summary_provider,omitempty"`
	SummaryModel    string `json:"summary_model,omitempty"`

	TranscriptFile string `json:"transcript_file,omitempty"`
	SummaryFile    string `json:"summary_file,omitempty"`

	MediaDurationSeconds float64 `json:"media_duration_seconds,omitempty"`
	TranscribeSeconds    float64 `json:"transcribe_seconds,omitempty"`
	SummarizeSeconds     float64 `json:"summarize_seconds,omitempty"`
}

// WriteMetadata writes the record as {stem}_metadata.json and returns the
// written path
func (w *Workspace) WriteMetadata(stem string, record *MetadataRecord) (string, error) {
	if err := os.MkdirAll(w.MetadataDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create metadata directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	path := filepath.Join(w.MetadataDir(), stem+"_metadata.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	logger.WithComponent("workspace").Debug().Str("path", path).Msg("Metadata record written")
	return path, nil
}
