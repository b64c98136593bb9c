package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ProcessRunner invokes an external binary in dir and reports its exit
// status. A non-nil error means the process could not be run at all; a
// non-zero status with a nil error means the process ran and failed.
type ProcessRunner interface {
	Run(ctx context.Context, dir, name string, args []string) (int, error)
}

// ExecRunner runs processes on the host, blocking until they exit.
// Standard output and error are passed through for visibility.
type ExecRunner struct {
	// Stdout and Stderr default to the host's streams.
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return 0, nil
}
