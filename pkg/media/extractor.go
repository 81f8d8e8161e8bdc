package media

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/recapkit/recapkit/pkg/errs"
	"github.com/recapkit/recapkit/pkg/logger"
)

var (
	videoExts = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
	audioExts = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}
)

// ExtractorImpl implements the Extractor interface using ffmpeg
type ExtractorImpl struct {
	tempDir string
}

// NewExtractor creates a new media extractor that writes temporary audio
// files into tempDir
func NewExtractor(tempDir string) *ExtractorImpl {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &ExtractorImpl{
		tempDir: tempDir,
	}
}

// ValidateSource checks that the path exists and has a supported extension.
// It never invokes ffmpeg, so unsupported inputs fail before any external call.
func (e *ExtractorImpl) ValidateSource(filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%w: file does not exist: %s", errs.ErrMissingInput, filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if !contains(videoExts, ext) && !contains(audioExts, ext) {
		return fmt.Errorf("%w: unsupported file extension %q", errs.ErrMissingInput, ext)
	}
	return nil
}

// IsVideo reports whether the path has a video extension
func IsVideo(filePath string) bool {
	return contains(videoExts, strings.ToLower(filepath.Ext(filePath)))
}

// IsSupported reports whether the path has a supported media extension
func IsSupported(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return contains(videoExts, ext) || contains(audioExts, ext)
}

// Probe extracts metadata from a media file via ffprobe
func (e *ExtractorImpl) Probe(filePath string) (*MediaInfo, error) {
	log := logger.WithComponent("media").WithField("file", filepath.Base(filePath))

	if err := e.ValidateSource(filePath); err != nil {
		return nil, err
	}

	log.Debug().Msg("Probing file with ffprobe")
	probeJSON, err := ffmpeg.Probe(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: ffprobe failed: %v", errs.ErrExternalTool, err)
	}

	info := &MediaInfo{
		FilePath: filePath,
		IsVideo:  IsVideo(filePath),
	}
	if err := parseProbeInfo(probeJSON, info); err != nil {
		return nil, fmt.Errorf("failed to parse probe info: %w", err)
	}

	log.Debug().
		Dur("duration", info.Duration).
		Bool("is_video", info.IsVideo).
		Int("sample_rate", info.SampleRate).
		Int("channels", info.Channels).
		Msg("Media information extracted")

	return info, nil
}

// PrepareAudio returns a path to an audio file suitable for the speech engine.
// Audio sources pass through untouched; video sources are converted to 16kHz
// mono WAV, the engine's preferred input format.
func (e *ExtractorImpl) PrepareAudio(filePath string) (string, bool, error) {
	log := logger.WithComponent("media").WithField("file", filepath.Base(filePath))

	if err := e.ValidateSource(filePath); err != nil {
		return "", false, err
	}

	if !IsVideo(filePath) {
		log.Debug().Msg("Audio source, no extraction needed")
		return filePath, false, nil
	}

	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create temp directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	audioPath := filepath.Join(e.tempDir, fmt.Sprintf("%s_audio_%d.wav", stem, time.Now().Unix()))

	log.Info().Str("audio_path", audioPath).Msg("Extracting audio track")
	startTime := time.Now()

	err := ffmpeg.Input(filePath).
		Output(audioPath, ffmpeg.KwArgs{
			"vn":  "",
			"ar":  "16000",
			"ac":  "1",
			"c:a": "pcm_s16le",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", false, fmt.Errorf("%w: ffmpeg extraction failed: %v", errs.ErrExternalTool, err)
	}

	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return "", false, fmt.Errorf("%w: extracted audio file was not created: %s", errs.ErrExternalTool, audioPath)
	}

	log.Info().
		Dur("elapsed", time.Since(startTime)).
		Msg("Audio extraction completed")

	return audioPath, true, nil
}

func contains(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// parseProbeInfo parses ffprobe JSON output and fills MediaInfo
func parseProbeInfo(probeData string, info *MediaInfo) error {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
		} `json:"format"`
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
		} `json:"streams"`
	}

	if err := json.Unmarshal([]byte(probeData), &probe); err != nil {
		return fmt.Errorf("failed to parse probe JSON: %w", err)
	}

	if probe.Format.Duration != "" {
		if seconds, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = time.Duration(seconds * float64(time.Second))
		}
	}
	if probe.Format.Size != "" {
		if size, err := strconv.ParseInt(probe.Format.Size, 10, 64); err == nil {
			info.Size = size
		}
	}

	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" {
			if stream.SampleRate != "" {
				if rate, err := strconv.Atoi(stream.SampleRate); err == nil {
					info.SampleRate = rate
				}
			}
			info.Channels = stream.Channels
			break
		}
	}

	return nil
}
