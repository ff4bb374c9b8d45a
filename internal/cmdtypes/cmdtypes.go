// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/draftpush/cli/internal/config"
	"github.com/draftpush/cli/internal/toolchain"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded config file with defaults applied.
	Config *config.Config

	ConfigPath string // resolved --config path
	ConfigFlag string // raw --config flag value
	Endpoint   string // resolved management service endpoint
	Token      string
	Timeout    time.Duration

	// Dir is the project directory (--dir).
	Dir     string
	Verbose bool

	// FS is the filesystem every command reads and writes through.
	FS afero.Fs

	// Runner invokes language toolchains.
	Runner toolchain.Runner

	// Stdout receives the push report. Nil means the command's output stream.
	Stdout io.Writer
}
