package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewCLIClient_Defaults(t *testing.T) {
	c := NewCLIClient(nil)
	if len(c.command) != 1 || c.command[0] != "claude" {
		t.Errorf("command = %v, want [claude]", c.command)
	}
	if c.timeout != 120*time.Second {
		t.Errorf("timeout = %s, want 120s", c.timeout)
	}
}

func TestNewCLIClient_WithTimeout(t *testing.T) {
	c := NewCLIClient([]string{"claude", "--model", "sonnet"}, WithCLITimeout(5*time.Second))
	if c.timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", c.timeout)
	}
	if len(c.command) != 3 {
		t.Errorf("command = %v, want 3 elements", c.command)
	}
}

func TestComplete_EchoesStdin(t *testing.T) {
	c := NewCLIClient([]string{"cat"})

	got, err := c.Complete(context.Background(), "hello prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello prompt" {
		t.Errorf("result = %q, want %q", got, "hello prompt")
	}
}

func TestComplete_TrimsWhitespace(t *testing.T) {
	c := NewCLIClient([]string{"sh", "-c", "printf '  reply  \n'"})

	got, err := c.Complete(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "reply" {
		t.Errorf("result = %q, want %q", got, "reply")
	}
}

func TestComplete_EmptyOutputIsSuccess(t *testing.T) {
	c := NewCLIClient([]string{"true"})

	got, err := c.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "" {
		t.Errorf("result = %q, want empty", got)
	}
}

func TestComplete_NonzeroExit(t *testing.T) {
	c := NewCLIClient([]string{"sh", "-c", "echo boom >&2; exit 3"})

	_, err := c.Complete(context.Background(), "prompt")
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("err = %v, want *CLIError", err)
	}
	if cliErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", cliErr.ExitCode)
	}
	if cliErr.Stderr != "boom" {
		t.Errorf("Stderr = %q, want boom", cliErr.Stderr)
	}
}

func TestComplete_CommandNotFound(t *testing.T) {
	c := NewCLIClient([]string{"definitely-not-a-real-command-12345"})

	_, err := c.Complete(context.Background(), "prompt")
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want *UnavailableError", err)
	}
	if unavailable.Command != "definitely-not-a-real-command-12345" {
		t.Errorf("Command = %q", unavailable.Command)
	}
}

func TestComplete_Timeout(t *testing.T) {
	c := NewCLIClient([]string{"sleep", "10"}, WithCLITimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.Complete(context.Background(), "prompt")
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("err = %v, want *TimeoutError", err)
	}
	if timeoutErr.Timeout != 50*time.Millisecond {
		t.Errorf("Timeout = %s, want 50ms", timeoutErr.Timeout)
	}
	// The process must be killed, not waited for.
	if elapsed > 5*time.Second {
		t.Errorf("Complete took %s, process not terminated on timeout", elapsed)
	}
}

func TestComplete_ContextCanceled(t *testing.T) {
	c := NewCLIClient([]string{"sleep", "10"}, WithCLITimeout(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := c.Complete(ctx, "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
