package engine

import (
	"fmt"
	"time"
)

// TimeoutError reports that the generator did not finish within the
// configured timeout. The process has been terminated; a retry may help.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generator timed out after %s", e.Timeout)
}

// UnavailableError reports that the generator command could not be launched
// at all (not installed or not reachable). Retrying will not help without
// operator intervention.
type UnavailableError struct {
	Command string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generator command %q unavailable: %v", e.Command, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// CLIError reports that the generator ran but exited with a nonzero status.
// Stderr carries the decoded error detail.
type CLIError struct {
	ExitCode int
	Stderr   string
}

func (e *CLIError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("generator exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("generator exited with status %d: %s", e.ExitCode, e.Stderr)
}
