package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftpush/cli/internal/cmdtypes"
	"github.com/draftpush/cli/internal/config"
	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the draftpush configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file matches the configuration schema
  3. Config values decode (durations, booleans)

The config path is resolved using precedence:
  --config flag > DRAFTPUSH_CONFIG env > ~/.draftpush/config.yaml

Examples:
  # Validate default configuration
  draftpush config vet

  # Validate custom config path
  draftpush config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	w := c.OutOrStdout()

	exists, err := config.ConfigFileExists(cfg.FS, path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'draftpush config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}
	fmt.Fprintln(w, output.FormatVetCheck("Config file found", path))

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(cfg.FS, path); err != nil {
		return err
	}
	fmt.Fprintln(w, output.FormatVetCheck("Schema valid", ""))

	loaded, err := config.NewLoader(cfg.FS).LoadWithDefaults(path)
	if err != nil {
		return oerrors.NewValidationError(err.Error(), path, "", "")
	}
	fmt.Fprintln(w, output.FormatVetCheck("Values decode", fmt.Sprintf("endpoint %s, timeout %s",
		loaded.Service.Endpoint, loaded.Service.Timeout)))

	return nil
}
