package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftpush/cli/internal/cmdtypes"
	"github.com/draftpush/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for the draftpush CLI.

Shows the CLI version, build information, and the versions of the
toolchains the build backends use (cargo, node, npm).`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			tools := version.DetectToolchains(c.Context(), cfg.Runner)
			fmt.Fprintln(c.OutOrStdout(), version.FullVersionString(version.Get(), tools))
			return nil
		},
	}
}
