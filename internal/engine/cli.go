package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// CLIClient implements ModelClient by invoking an external command-line
// text generator (e.g. the claude CLI). The prompt is delivered on the
// process's standard input — not as an argument — so the tool must support
// non-interactive stdin mode. The reply is read from standard output.
type CLIClient struct {
	command []string
	timeout time.Duration
}

// CLIOption configures the CLI client.
type CLIOption func(*CLIClient)

// WithCLITimeout sets the per-invocation timeout.
func WithCLITimeout(d time.Duration) CLIOption {
	return func(c *CLIClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCLIClient creates a CLI-backed model client. command is the executable
// plus its fixed arguments.
func NewCLIClient(command []string, opts ...CLIOption) *CLIClient {
	if len(command) == 0 {
		command = []string{"claude"}
	}
	c := &CLIClient{
		command: command,
		timeout: 120 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete runs the external command with the prompt on stdin and returns
// its trimmed stdout. Failures are classified: *TimeoutError when the
// deadline expires (the process is killed before returning),
// *UnavailableError when the command cannot be launched, *CLIError when it
// exits nonzero. Empty output is a valid result, not an error.
func (c *CLIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Info("invoking generator", "command", c.command[0], "prompt_length", len(prompt))

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		// CommandContext has already killed the process.
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			slog.Error("generator timed out", "command", c.command[0], "timeout", c.timeout.String())
			return "", &TimeoutError{Timeout: c.timeout}
		}
		return "", ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(decodeUTF8(stderr.Bytes()))
			slog.Error("generator failed", "command", c.command[0], "exit_code", exitErr.ExitCode(), "stderr", detail)
			return "", &CLIError{ExitCode: exitErr.ExitCode(), Stderr: detail}
		}
		slog.Error("generator unavailable", "command", c.command[0], "error", err)
		return "", &UnavailableError{Command: c.command[0], Err: err}
	}

	result := strings.TrimSpace(decodeUTF8(stdout.Bytes()))
	slog.Info("generator responded", "command", c.command[0], "response_length", len(result))
	return result, nil
}

// decodeUTF8 decodes process output best-effort, replacing invalid bytes.
func decodeUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
