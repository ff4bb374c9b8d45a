// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/draftpush/cli/internal/cmd/config"
	"github.com/draftpush/cli/internal/cmdtypes"
	cfgpkg "github.com/draftpush/cli/internal/config"
	"github.com/draftpush/cli/internal/output"
	"github.com/draftpush/cli/internal/toolchain"
	"github.com/draftpush/cli/internal/version"
)

// NewRootCmd creates the root command for the draftpush CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cmdtypes.GlobalConfig{
		FS:     afero.NewOsFs(),
		Runner: toolchain.NewExecRunner(),
	})
}

// newRootCmd builds the command tree around cfg. FS, Runner and Stdout are
// taken as given; everything else is resolved in PersistentPreRunE.
func newRootCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		configFlag     string
		endpointFlag   string
		dirFlag        string
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "draftpush",
		Short: "Build extension scripts and push them as drafts",
		Long: `draftpush compiles an extension script project with its language toolchain,
packages the result with its schema metadata, and publishes it as a draft
version to the management service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, globalFlags{
				config:     configFlag,
				endpoint:   endpointFlag,
				dir:        dirFlag,
				verbose:    verboseFlag,
				timestamps: timestampsFlag,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: DRAFTPUSH_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Management service endpoint (env: DRAFTPUSH_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewPushCmd(cfg))
	rootCmd.AddCommand(NewBuildCmd(cfg))
	rootCmd.AddCommand(config.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

type globalFlags struct {
	config     string
	endpoint   string
	dir        string
	verbose    bool
	timestamps bool
}

// initializeGlobals sets up logging and resolves configuration into cfg.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags globalFlags) error {
	loaded, loadErr := cfgpkg.NewLoader(cfg.FS).Load(flags.config)

	resolved, err := cfgpkg.ResolveAll(cfgpkg.ResolveAllOptions{
		ConfigFlag:   flags.config,
		EndpointFlag: flags.endpoint,
		Config:       loaded,
	})
	if err != nil {
		return err
	}

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		// Commands still run on defaults; config vet reports the details.
		output.Warn("config file could not be loaded, using defaults",
			"path", resolved.ConfigPath.Value, "error", loadErr)
	}

	if loaded == nil {
		loaded = cfgpkg.DefaultConfig()
	}
	cfg.Config = loaded.WithDefaults()
	cfg.ConfigFlag = flags.config
	cfg.ConfigPath = resolved.ConfigPath.Value
	cfg.Endpoint = resolved.Endpoint.Value
	cfg.Token = resolved.Token
	cfg.Timeout = resolved.Timeout
	cfg.Dir = flags.dir
	cfg.Verbose = flags.verbose

	info := version.Get()
	output.Debug("draftpush started", "version", info.Version, "go", info.GoVersion)
	cfgpkg.LogResolvedValues(resolved.ConfigPath, resolved.Endpoint)

	return nil
}
