package model

import (
	"fmt"
)

// ValidationError reports malformed input detected before any external process starts.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ProcessError reports an external process that failed to start or exited non-zero.
type ProcessError struct {
	// Step is the pipeline step, e.g. "checkout" or "execute"
	Step string
	// Client is empty for steps shared by both clients
	Client string
	// Command is the shell-quoted command line
	Command  string
	ExitCode int
	// Err is set when the process could not be started
	Err error
}

func (e *ProcessError) Error() string {
	subject := e.Step
	if e.Client != "" {
		subject = fmt.Sprintf("%s for %s", e.Step, e.Client)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", subject, e.Err)
	}
	return fmt.Sprintf("%s failed with exit code %d", subject, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
