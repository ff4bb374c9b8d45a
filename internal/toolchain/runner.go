// Package toolchain runs language toolchains as subprocesses.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/draftpush/cli/internal/output"
)

// Runner invokes external commands.
type Runner interface {
	// CaptureCombined runs name with args in dir and returns the interleaved
	// stdout and stderr. ok is false when the command ran but exited
	// unsuccessfully; err is reserved for failures to start or wait.
	CaptureCombined(ctx context.Context, dir, name string, args ...string) (out string, ok bool, err error)

	// LookPath resolves name on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// CaptureCombined implements Runner.
func (r *ExecRunner) CaptureCombined(ctx context.Context, dir, name string, args ...string) (string, bool, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	output.Debug("running toolchain", "dir", dir, "cmd", CommandLine(name, args...))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.Debug("toolchain exited with failure", "code", exitErr.ExitCode())
			return combined.String(), false, nil
		}
		return combined.String(), false, err
	}

	return combined.String(), true, nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CommandLine renders name and args as a single shell-like string.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
