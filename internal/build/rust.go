package build

import (
	"context"
	"path/filepath"

	"github.com/draftpush/cli/internal/metadata"
)

// RustTarget is the cargo target triple scripts are compiled for.
const RustTarget = "wasm32-unknown-unknown"

func init() {
	Register("rust", func(opts Options) Backend { return &Rust{opts: opts} })
}

// Rust builds projects with cargo.
type Rust struct {
	opts Options
}

var cargoBuild = command{
	name: "cargo",
	args: []string{"build", "--target=" + RustTarget, "--release"},
}

// BinaryPath is where cargo writes the release binary.
func (r *Rust) BinaryPath() string {
	return filepath.Join(r.opts.Project.Directory, "target", RustTarget, "release",
		r.opts.Project.ScriptName+"."+CompiledTypeWasm)
}

// Build implements Backend.
func (r *Rust) Build(ctx context.Context) (Artifact, error) {
	if _, err := run(ctx, r.opts, cargoBuild); err != nil {
		return Artifact{}, err
	}

	path := r.BinaryPath()
	content, err := readBinary(r.opts.FS, path)
	if err != nil {
		return Artifact{}, err
	}

	logBuilt(r.opts, path, content)
	return Artifact{Content: content, CompiledType: CompiledTypeWasm}, nil
}

// Metadata implements Backend.
func (r *Rust) Metadata() (metadata.Metadata, error) {
	return extractMetadata(r.opts)
}

// CompiledType implements Backend.
func (r *Rust) CompiledType() string {
	return CompiledTypeWasm
}
