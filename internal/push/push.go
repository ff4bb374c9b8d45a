// Package push drives a project from source to a published draft.
//
// A push moves through the States in order. Any stage error aborts the push
// and is returned unchanged, so callers can classify it with errors.Is and
// errors.As. Validation errors reported by the service are part of the
// result and do not fail the push.
package push

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/draftpush/cli/internal/build"
	"github.com/draftpush/cli/internal/configui"
	"github.com/draftpush/cli/internal/draft"
	"github.com/draftpush/cli/internal/metadata"
	"github.com/draftpush/cli/internal/output"
	"github.com/draftpush/cli/internal/project"
	"github.com/draftpush/cli/internal/pushpkg"
	"github.com/draftpush/cli/internal/toolchain"
)

// Options control a single push.
type Options struct {
	// Force asks the service to replace the draft unconditionally.
	Force bool

	// SkipBuild publishes the package left by the previous build instead
	// of compiling again.
	SkipBuild bool
}

// BackendFactory returns the build backend for a project.
type BackendFactory func(build.Options) (build.Backend, error)

// Pipeline holds the collaborators of a push.
type Pipeline struct {
	FS         afero.Fs
	Runner     toolchain.Runner
	Env        EnvChecker
	Registrar  Registrar
	Store      RegistrationStore
	NewBackend BackendFactory
	Packages   *pushpkg.Repository
	Publisher  Publisher
	Reporter   *Reporter
}

// Push runs the full pipeline for p and returns the resulting draft version.
func (pl *Pipeline) Push(ctx context.Context, p *project.Project, opts Options) (*draft.Version, error) {
	logger := output.ProjectLogger(p.ScriptName)

	enter(logger, StateCheckingEnvironment)
	if err := pl.Env.Ensure(p, project.RequiredForPush...); err != nil {
		return nil, err
	}

	if !p.Registered() {
		enter(logger, StateRegistering)
		if err := pl.register(ctx, p); err != nil {
			return nil, err
		}
	}

	var pkg *pushpkg.Package
	var err error
	if opts.SkipBuild {
		pkg, err = pl.reuse(logger, p)
	} else {
		pkg, err = pl.build(ctx, logger, p)
	}
	if err != nil {
		return nil, err
	}

	enter(logger, StatePublishing)
	pl.Reporter.Waiting()
	var v *draft.Version
	err = output.RunWithSpinner(ctx, "Publishing draft", func(ctx context.Context) error {
		var uerr error
		v, uerr = pl.Publisher.Update(ctx, p, pkg, p.Env.APIKey, draft.WithForce(opts.Force))
		return uerr
	})
	if err != nil {
		return nil, err
	}

	enter(logger, StateReporting)
	pl.Reporter.Report(p, v)
	return v, nil
}

// Build compiles p and assembles the package without publishing it.
func (pl *Pipeline) Build(ctx context.Context, p *project.Project) (*pushpkg.Package, error) {
	return pl.build(ctx, output.ProjectLogger(p.ScriptName), p)
}

func (pl *Pipeline) register(ctx context.Context, p *project.Project) error {
	id, err := pl.Registrar.Register(ctx, p)
	if err != nil {
		return err
	}
	if err := pl.Store.SaveRegistration(p, id); err != nil {
		return err
	}
	p.Env.RegistrationID = id
	pl.Reporter.Registered(p)
	return nil
}

func (pl *Pipeline) backend(p *project.Project) (build.Backend, error) {
	newBackend := pl.NewBackend
	if newBackend == nil {
		newBackend = build.New
	}
	return newBackend(build.Options{FS: pl.FS, Runner: pl.Runner, Project: p})
}

func (pl *Pipeline) build(ctx context.Context, logger *log.Logger, p *project.Project) (*pushpkg.Package, error) {
	backend, err := pl.backend(p)
	if err != nil {
		return nil, err
	}

	enter(logger, StateBuilding)
	artifact, err := backend.Build(ctx)
	if err != nil {
		return nil, err
	}

	md, ui, err := pl.describe(logger, p, backend)
	if err != nil {
		return nil, err
	}

	enter(logger, StateAssembling)
	return pl.Packages.Create(p, artifact.Content, artifact.CompiledType, md, ui)
}

func (pl *Pipeline) reuse(logger *log.Logger, p *project.Project) (*pushpkg.Package, error) {
	backend, err := pl.backend(p)
	if err != nil {
		return nil, err
	}

	enter(logger, StateReusing)
	md, ui, err := pl.describe(logger, p, backend)
	if err != nil {
		return nil, err
	}

	enter(logger, StateAssembling)
	return pl.Packages.Get(p, backend.CompiledType(), md, ui)
}

func (pl *Pipeline) describe(logger *log.Logger, p *project.Project, backend build.Backend) (metadata.Metadata, *configui.ConfigUI, error) {
	enter(logger, StateExtractingMetadata)
	md, err := backend.Metadata()
	if err != nil {
		return metadata.Metadata{}, nil, err
	}
	logger.Debug("metadata", "schemas", md.SchemaNames())

	ui, err := configui.Load(pl.FS, p.Directory)
	if err != nil {
		return metadata.Metadata{}, nil, err
	}
	return md, ui, nil
}

func enter(logger *log.Logger, s State) {
	logger.Debug("entering state", "state", string(s))
}
