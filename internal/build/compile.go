package build

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/output"
	"github.com/draftpush/cli/internal/toolchain"
)

// command is a toolchain invocation.
type command struct {
	name string
	args []string
}

func (c command) String() string {
	return toolchain.CommandLine(c.name, c.args...)
}

// run executes c in the project directory. A failed exit becomes a
// ServiceFailureError carrying the combined output.
func run(ctx context.Context, opts Options, c command) (string, error) {
	out, ok, err := opts.Runner.CaptureCombined(ctx, opts.Project.Directory, c.name, c.args...)
	if err != nil {
		return out, &oerrors.ServiceFailureError{
			Op:      oerrors.OpBuild,
			Message: fmt.Sprintf("could not run %q", c.String()),
			Output:  out,
			Cause:   err,
		}
	}
	if !ok {
		return out, &oerrors.ServiceFailureError{
			Op:      oerrors.OpBuild,
			Message: fmt.Sprintf("%q failed", c.String()),
			Output:  out,
		}
	}
	return out, nil
}

// readBinary returns the bytes at path, or BinaryNotFoundError when the
// toolchain exited cleanly without producing it.
func readBinary(fsys afero.Fs, path string) ([]byte, error) {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("checking compiled binary: %w", err)
	}
	if !exists {
		return nil, &oerrors.BinaryNotFoundError{Path: path}
	}

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading compiled binary: %w", err)
	}
	return content, nil
}

func logBuilt(opts Options, path string, content []byte) {
	output.ProjectLogger(opts.Project.ScriptName).Debug("compiled",
		"language", opts.Project.Language,
		"binary", path,
		"bytes", len(content),
	)
}
