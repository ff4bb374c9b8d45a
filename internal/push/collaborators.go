package push

import (
	"context"

	"github.com/spf13/afero"

	"github.com/draftpush/cli/internal/draft"
	"github.com/draftpush/cli/internal/project"
	"github.com/draftpush/cli/internal/pushpkg"
)

// EnvChecker verifies a project's credentials before anything runs.
type EnvChecker interface {
	Ensure(p *project.Project, required ...string) error
}

// EnvCheckerFunc adapts a function to EnvChecker.
type EnvCheckerFunc func(p *project.Project, required ...string) error

// Ensure implements EnvChecker.
func (f EnvCheckerFunc) Ensure(p *project.Project, required ...string) error {
	return f(p, required...)
}

// ProjectEnv checks the values loaded from the project's .env file.
var ProjectEnv EnvChecker = EnvCheckerFunc(func(p *project.Project, required ...string) error {
	return project.EnsureEnv(p.Env, required...)
})

// Registrar creates the remote registration for an unregistered project.
type Registrar interface {
	Register(ctx context.Context, p *project.Project) (string, error)
}

// RegistrationStore persists a new registration id with the project.
type RegistrationStore interface {
	SaveRegistration(p *project.Project, id string) error
}

// EnvFileStore writes registration ids into the project's .env file.
type EnvFileStore struct {
	FS afero.Fs
}

// SaveRegistration implements RegistrationStore.
func (s EnvFileStore) SaveRegistration(p *project.Project, id string) error {
	return project.SaveRegistration(s.FS, p, id)
}

// Publisher submits packages as drafts.
type Publisher interface {
	Update(ctx context.Context, p *project.Project, pkg *pushpkg.Package, apiKey string, opts ...draft.UpdateOption) (*draft.Version, error)
}
