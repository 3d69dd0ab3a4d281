package proc

// proc.go provides process spawning for the comparison pipeline. Every
// command carries its own working directory; nothing changes the working
// directory of this process.

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
)

// Command describes one external process.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory
	Dir string
	// Env is appended to the inherited environment
	Env []string

	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command as a shell-quoted line.
func (c Command) String() string {
	return shellescape.QuoteCommand(append([]string{c.Name}, c.Args...))
}

// Runner runs commands to completion.
type Runner interface {
	// Run blocks until the command exits and returns its exit code. The error
	// is non-nil only if the command could not be run at all.
	Run(ctx context.Context, cmd Command) (int, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	logger zerolog.Logger
}

// NewExec creates a Runner backed by os/exec.
func NewExec(logger zerolog.Logger) *Exec {
	return &Exec{logger: logger}
}

func (e *Exec) Run(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	e.logger.Debug().
		Str("command", c.String()).
		Str("dir", c.Dir).
		Strs("env", c.Env).
		Msg("Running")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			e.logger.Debug().
				Int("exit_code", exitErr.ExitCode()).
				Str("command", c.String()).
				Msg("Command exited with non-zero status")
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
