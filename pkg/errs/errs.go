// Package errs defines the error kinds surfaced by the pipeline. Every
// failure is fatal to the current run; callers wrap these sentinels with
// fmt.Errorf("...: %w", ...) to add stage context.
package errs

import "errors"

var (
	// ErrMissingInput indicates the source path does not exist or has an
	// unsupported extension.
	ErrMissingInput = errors.New("missing or unsupported input")

	// ErrMissingCredential indicates the required API key is absent.
	ErrMissingCredential = errors.New("missing credential")

	// ErrExternalTool indicates an external tool or model call failed or
	// returned a non-success status.
	ErrExternalTool = errors.New("external tool failure")

	// ErrEmptyTranscript indicates the summarizer was invoked on empty or
	// whitespace-only text.
	ErrEmptyTranscript = errors.New("empty transcript")
)
