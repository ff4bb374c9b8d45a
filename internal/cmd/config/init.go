package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/draftpush/cli/internal/cmdtypes"
	"github.com/draftpush/cli/internal/config"
	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/output"
)

const configHeader = "# draftpush CLI configuration\n# Values can be overridden with DRAFTPUSH_* environment variables.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Create the draftpush configuration file with default values.

The file is created at ~/.draftpush/config.yaml unless --config or
DRAFTPUSH_CONFIG points elsewhere.

Examples:
  # Initialize configuration
  draftpush config init

  # Overwrite existing configuration
  draftpush config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	exists, err := config.ConfigFileExists(cfg.FS, path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	// Directory and file hold the service token, so keep them private.
	if err := cfg.FS.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path))
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := afero.WriteFile(cfg.FS, path, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}

	output.Debug("config written", "path", path)
	fmt.Fprintln(c.OutOrStdout(), "Configuration initialized at "+path)
	fmt.Fprintln(c.OutOrStdout(), "Validate with: draftpush config vet")
	return nil
}
