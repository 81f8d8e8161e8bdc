package whisper

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// execCommand implements CommandExecutor with os/exec
type execCommand struct{}

// NewExecutor creates a CommandExecutor backed by os/exec
func NewExecutor() CommandExecutor {
	return &execCommand{}
}

// Execute runs an external command with the given arguments
func (e *execCommand) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command %q failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}

	return stdout.String(), nil
}
