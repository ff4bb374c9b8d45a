package cmdutil

import (
	"io"

	"github.com/draftpush/cli/internal/cmdtypes"
	"github.com/draftpush/cli/internal/draft"
	"github.com/draftpush/cli/internal/project"
	"github.com/draftpush/cli/internal/push"
	"github.com/draftpush/cli/internal/pushpkg"
)

// LoadProject reads the project in cfg.Dir.
func LoadProject(cfg *cmdtypes.GlobalConfig) (*project.Project, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return project.Load(cfg.FS, dir)
}

// NewPipeline wires the push pipeline for cfg. Client overrides the HTTP
// transport when non-nil.
func NewPipeline(cfg *cmdtypes.GlobalConfig, stdout io.Writer, client draft.Client) *push.Pipeline {
	if client == nil {
		client = draft.NewHTTPClient(draft.HTTPOptions{
			Endpoint: cfg.Endpoint,
			Token:    cfg.Token,
			Timeout:  cfg.Timeout,
		})
	}
	if cfg.Stdout != nil {
		stdout = cfg.Stdout
	}
	publisher := draft.NewPublisher(client)

	return &push.Pipeline{
		FS:        cfg.FS,
		Runner:    cfg.Runner,
		Env:       push.ProjectEnv,
		Registrar: publisher,
		Store:     push.EnvFileStore{FS: cfg.FS},
		Packages:  pushpkg.NewRepository(cfg.FS),
		Publisher: publisher,
		Reporter:  push.NewReporter(stdout),
	}
}
