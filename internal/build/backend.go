// Package build compiles extension projects with a language-specific backend.
//
// Each source language is a Backend variant registered under its language
// name. Callers obtain a backend with New and treat every variant the same way.
package build

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/metadata"
	"github.com/draftpush/cli/internal/project"
	"github.com/draftpush/cli/internal/toolchain"
)

// MetadataFile is the descriptor every backend emits under the build directory.
const MetadataFile = "metadata.json"

// CompiledTypeWasm tags WebAssembly output.
const CompiledTypeWasm = "wasm"

// Artifact is the compiled output of a backend.
type Artifact struct {
	// Content is the raw binary payload.
	Content []byte

	// CompiledType is the output file extension, e.g. "wasm".
	CompiledType string
}

// Backend compiles a project and reports the schema metadata it was built against.
type Backend interface {
	// Build runs the toolchain and returns the compiled artifact.
	Build(ctx context.Context) (Artifact, error)

	// Metadata extracts the schema metadata emitted by the last build.
	Metadata() (metadata.Metadata, error)

	// CompiledType is the extension of the artifact Build produces.
	CompiledType() string
}

// Options are the collaborators a backend needs.
type Options struct {
	FS      afero.Fs
	Runner  toolchain.Runner
	Project *project.Project
}

// Factory constructs a Backend.
type Factory func(Options) Backend

var registry = map[string]Factory{}

// Register makes a backend available under language. It panics on duplicates.
func Register(language string, f Factory) {
	if _, dup := registry[language]; dup {
		panic(fmt.Sprintf("build: backend %q registered twice", language))
	}
	registry[language] = f
}

// Languages returns the registered language names, sorted.
func Languages() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the backend for the project's language.
func New(opts Options) (Backend, error) {
	f, ok := registry[opts.Project.Language]
	if !ok {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("unsupported language %q", opts.Project.Language),
			"",
			"language",
			"Supported languages: "+strings.Join(Languages(), ", "),
		)
	}
	return f(opts), nil
}

// extractMetadata is shared by all backends: the descriptor lives at
// build/metadata.json regardless of language.
func extractMetadata(opts Options) (metadata.Metadata, error) {
	return metadata.Extract(opts.FS, opts.Project.BuildPath(MetadataFile))
}
