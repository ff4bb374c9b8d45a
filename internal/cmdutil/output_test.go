package cmdutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/output"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Timestamps: output.BoolPtr(false), Writer: &buf})
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })
	return &buf
}

func TestPrintError_ServiceFailureWithOutput(t *testing.T) {
	buf := captureLog(t)

	PrintError("push failed", &oerrors.ServiceFailureError{
		Op:      oerrors.OpBuild,
		Message: `"cargo build" failed`,
		Output:  "error[E0425]: cannot find value `x`",
	})

	out := buf.String()
	assert.Contains(t, out, "push failed: build")
	assert.Contains(t, out, "error[E0425]: cannot find value `x`\n")
}

func TestPrintError_EnvironmentMissing(t *testing.T) {
	buf := captureLog(t)

	PrintError("push failed", &oerrors.EnvironmentMissingError{Missing: []string{"secret"}})

	out := buf.String()
	assert.Contains(t, out, "secret")
	assert.Contains(t, out, ".env")
}

func TestPrintError_Detail(t *testing.T) {
	buf := captureLog(t)

	PrintError("push failed", oerrors.NewNotFoundError("no project descriptor found", "/work/.draftpush.yml", "Run draftpush from the root of an extension project"))

	out := buf.String()
	assert.Contains(t, out, "no project descriptor found")
	assert.Contains(t, out, "/work/.draftpush.yml")
}

func TestPrintError_Plain(t *testing.T) {
	buf := captureLog(t)

	PrintError("push failed", errors.New("boom"))

	assert.Contains(t, buf.String(), "boom")
}

func TestExitWithError(t *testing.T) {
	captureLog(t)
	cause := &oerrors.EnvironmentMissingError{Missing: []string{"shop"}}

	err := ExitWithError("push failed", cause)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitEnvironmentError, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.True(t, errors.Is(err, oerrors.ErrEnvironment))
}

func TestExitWithError_LogsExitReasonWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Verbose: true, Writer: &buf})
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	err := ExitWithError("push failed", &oerrors.ServiceFailureError{Op: oerrors.OpBuild, Message: "cargo failed"})

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitBuildError, exitErr.Code)
	assert.Contains(t, buf.String(), "Build Error")
}
