// Package cmdutil provides shared command utilities for the push and build
// commands. It centralizes flag groups, error printing, and construction of
// the push pipeline from resolved configuration.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// PushFlags holds flags that change how a push runs.
type PushFlags struct {
	Force     bool
	SkipBuild bool
}

// AddTo registers the push flags on the given cobra command.
func (f *PushFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Force, "force", "f", false,
		"Replace the draft even if the service would otherwise refuse")
	cmd.Flags().BoolVar(&f.SkipBuild, "skip-build", false,
		"Publish the package from the previous build without compiling")
}
