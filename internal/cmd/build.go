package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftpush/cli/internal/cmdtypes"
	"github.com/draftpush/cli/internal/cmdutil"
	"github.com/draftpush/cli/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the project without pushing",
		Long: `Compile the project and write the package to build/<script>.<type>.

The package can later be published without recompiling with
'draftpush push --skip-build'.

Examples:
  # Build the project in the current directory
  draftpush build

  # Build with toolchain commands logged
  draftpush build --verbose`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runBuild(c, cfg)
		},
	}
}

func runBuild(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	p, err := cmdutil.LoadProject(cfg)
	if err != nil {
		return cmdutil.ExitWithError("build failed", err)
	}

	pkg, err := cmdutil.NewPipeline(cfg, c.OutOrStdout(), nil).Build(c.Context(), p)
	if err != nil {
		return cmdutil.ExitWithError("build failed", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark(output.Message(output.MsgBuildComplete, pkg.ID(), pkg.Size())))
	fmt.Fprintln(w, "  "+output.FormatKeyValue("schemas", pkg.Metadata().SchemaNames()))
	fmt.Fprintln(w, "  "+output.FormatKeyValue("digest", pkg.Digest()))
	if pkg.ConfigUI() == nil {
		fmt.Fprintln(w, output.FormatWarning("no config-ui.yml found; the script will not be configurable"))
	}
	return nil
}
