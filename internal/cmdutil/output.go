package cmdutil

import (
	"errors"
	"fmt"

	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/output"
)

// PrintError reports a failed command in a user-friendly format.
// Toolchain and service diagnostics are printed as plain text after a
// one-line summary; detail errors keep their own layout.
func PrintError(msg string, err error) {
	var svcErr *oerrors.ServiceFailureError
	var envErr *oerrors.EnvironmentMissingError
	var detailErr *oerrors.DetailError

	switch {
	case errors.As(err, &svcErr):
		summary := fmt.Sprintf("%s: %s %s", msg, svcErr.Op, svcErr.Message)
		if svcErr.Cause != nil {
			output.Error(summary, "error", svcErr.Cause)
		} else {
			output.Error(summary)
		}
		if svcErr.Output != "" {
			output.Details(svcErr.Output)
		}
	case errors.As(err, &envErr):
		output.Error(msg, "missing", envErr.Missing)
		output.Details("Add the missing values to the project's .env file and try again.")
	case errors.As(err, &detailErr):
		output.Error(msg)
		output.Details(detailErr.Error())
	default:
		output.Error(msg, "error", err)
	}
}

// ExitWithError wraps err with its exit code after printing it, so main does
// not print it again.
func ExitWithError(msg string, err error) error {
	PrintError(msg, err)
	code := oerrors.ExitCodeFromError(err)
	output.Debug("exiting", "code", code, "reason", oerrors.ExitCodeName(code))
	return &oerrors.ExitError{Err: err, Code: code, Printed: true}
}
