package build

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/metadata"
)

// MinNodeMajor is the oldest node release the AssemblyScript toolchain supports.
const MinNodeMajor = 14

func init() {
	Register("assemblyscript", func(opts Options) Backend { return &AssemblyScript{opts: opts} })
}

// AssemblyScript builds projects through the project's npm build script.
type AssemblyScript struct {
	opts Options
}

var npmBuild = command{name: "npm", args: []string{"run", "build"}}

// binaryPath is where the npm build script writes its output.
func (a *AssemblyScript) binaryPath() string {
	return a.opts.Project.BuildPath("script." + CompiledTypeWasm)
}

// Build implements Backend.
//
// Output left by an earlier run is moved aside before npm runs, so a build
// that exits cleanly without compiling reports BinaryNotFoundError instead of
// returning stale bytes. The earlier file is restored when no new output
// appears, which keeps a package stored at the same path intact.
func (a *AssemblyScript) Build(ctx context.Context) (Artifact, error) {
	if err := a.checkSystemDependencies(ctx); err != nil {
		return Artifact{}, err
	}

	path := a.binaryPath()
	restore, err := stashFile(a.opts.FS, path)
	if err != nil {
		return Artifact{}, err
	}

	if _, err := run(ctx, a.opts, npmBuild); err != nil {
		return Artifact{}, withRestore(err, restore)
	}

	content, err := readBinary(a.opts.FS, path)
	if err != nil {
		return Artifact{}, withRestore(err, restore)
	}
	if err := restore(true); err != nil {
		return Artifact{}, err
	}

	logBuilt(a.opts, path, content)
	return Artifact{Content: content, CompiledType: CompiledTypeWasm}, nil
}

// withRestore puts the stashed output back and returns err, joined with any
// restore failure.
func withRestore(err error, restore func(bool) error) error {
	if rerr := restore(false); rerr != nil {
		return errors.Join(err, rerr)
	}
	return err
}

// stashFile moves path aside when it exists. The returned func either
// discards the stashed copy (produced) or moves it back when nothing new
// was written.
func stashFile(fsys afero.Fs, path string) (func(produced bool) error, error) {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("checking previous build output: %w", err)
	}
	if !exists {
		return func(bool) error { return nil }, nil
	}

	stash := path + ".prev"
	if err := fsys.Rename(path, stash); err != nil {
		return nil, fmt.Errorf("moving previous build output aside: %w", err)
	}
	return func(produced bool) error {
		if produced {
			return fsys.Remove(stash)
		}
		if ok, _ := afero.Exists(fsys, path); ok {
			return fsys.Remove(stash)
		}
		if err := fsys.Rename(stash, path); err != nil {
			return fmt.Errorf("restoring previous build output: %w", err)
		}
		return nil
	}, nil
}

// checkSystemDependencies verifies node and npm are installed and node is recent enough.
func (a *AssemblyScript) checkSystemDependencies(ctx context.Context) error {
	for _, tool := range []string{"node", "npm"} {
		if _, err := a.opts.Runner.LookPath(tool); err != nil {
			return &oerrors.ServiceFailureError{
				Op:      oerrors.OpBuild,
				Message: fmt.Sprintf("%s is required to build AssemblyScript projects", tool),
				Cause:   err,
			}
		}
	}

	out, err := run(ctx, a.opts, command{name: "node", args: []string{"--version"}})
	if err != nil {
		return err
	}
	major, err := nodeMajor(out)
	if err != nil {
		return &oerrors.ServiceFailureError{Op: oerrors.OpBuild, Message: "could not determine node version", Output: out, Cause: err}
	}
	if major < MinNodeMajor {
		return &oerrors.ServiceFailureError{
			Op:      oerrors.OpBuild,
			Message: fmt.Sprintf("node %d or later is required, found %s", MinNodeMajor, strings.TrimSpace(out)),
		}
	}
	return nil
}

// nodeMajor parses the major version from `node --version` output such as "v18.17.1".
func nodeMajor(out string) (int, error) {
	v := strings.TrimPrefix(strings.TrimSpace(out), "v")
	major, _, _ := strings.Cut(v, ".")
	return strconv.Atoi(major)
}

// Metadata implements Backend.
func (a *AssemblyScript) Metadata() (metadata.Metadata, error) {
	return extractMetadata(a.opts)
}

// CompiledType implements Backend.
func (a *AssemblyScript) CompiledType() string {
	return CompiledTypeWasm
}
