package cmd

import (
	"github.com/spf13/cobra"

	"github.com/draftpush/cli/internal/cmdtypes"
	"github.com/draftpush/cli/internal/cmdutil"
	"github.com/draftpush/cli/internal/push"
)

// NewPushCmd creates the push command.
func NewPushCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var pf cmdutil.PushFlags

	c := &cobra.Command{
		Use:   "push",
		Short: "Build the project and push it as a draft",
		Long: `Build the project in the current directory and push it to the management
service as a draft version.

The project must have api_key, api_secret and shop set in its .env file.
Unregistered projects are registered first and the registration id is
written back to .env.

Validation errors reported by the service are listed, but the draft is
still updated and the command exits successfully.

Examples:
  # Build and push
  draftpush push

  # Push the package from the last build
  draftpush push --skip-build

  # Push a project in another directory
  draftpush push -d ./my-script`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runPush(c, cfg, &pf)
		},
	}

	pf.AddTo(c)

	return c
}

func runPush(c *cobra.Command, cfg *cmdtypes.GlobalConfig, pf *cmdutil.PushFlags) error {
	p, err := cmdutil.LoadProject(cfg)
	if err != nil {
		return cmdutil.ExitWithError("push failed", err)
	}

	pipeline := cmdutil.NewPipeline(cfg, c.OutOrStdout(), nil)
	if _, err := pipeline.Push(c.Context(), p, push.Options{
		Force:     pf.Force,
		SkipBuild: pf.SkipBuild,
	}); err != nil {
		return cmdutil.ExitWithError("push failed", err)
	}
	return nil
}
