package errors

import (
	"fmt"
	"strings"
)

// EnvironmentMissingError reports required environment values that are absent.
// It aborts a push before anything is built.
type EnvironmentMissingError struct {
	// Missing lists the required keys with no value, in request order.
	Missing []string
}

func (e *EnvironmentMissingError) Error() string {
	return fmt.Sprintf("missing required environment values: %s", strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrEnvironment.
func (e *EnvironmentMissingError) Unwrap() error {
	return ErrEnvironment
}

// Service operations reported by ServiceFailureError.
const (
	OpBuild    = "build"
	OpPublish  = "publish"
	OpRegister = "register"
)

// ServiceFailureError indicates a toolchain subprocess or the remote service
// failed at the process or transport level.
type ServiceFailureError struct {
	// Op is the failing operation (OpBuild, OpPublish, OpRegister).
	Op string

	// Message describes the failure.
	Message string

	// Output holds captured diagnostic output, such as combined stdout/stderr
	// of a build subprocess or a response body.
	Output string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *ServiceFailureError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

// Unwrap exposes both the operation's sentinel and the cause.
func (e *ServiceFailureError) Unwrap() []error {
	sentinel := ErrConnectivity
	if e.Op == OpBuild {
		sentinel = ErrBuild
	}
	if e.Cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Cause}
}

// BinaryNotFoundError indicates a toolchain exited successfully without
// producing the expected binary.
type BinaryNotFoundError struct {
	Path string
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("compiled binary not found at %s", e.Path)
}

// Unwrap returns ErrNotFound.
func (e *BinaryNotFoundError) Unwrap() error {
	return ErrNotFound
}

// MetadataNotFoundError indicates the metadata descriptor is absent.
type MetadataNotFoundError struct {
	Path string
}

func (e *MetadataNotFoundError) Error() string {
	return fmt.Sprintf("metadata file not found at %s", e.Path)
}

// Unwrap returns ErrNotFound.
func (e *MetadataNotFoundError) Unwrap() error {
	return ErrNotFound
}

// PackageNotFoundError indicates no previously built package exists on disk.
type PackageNotFoundError struct {
	Path string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("no built package at %s", e.Path)
}

// Unwrap returns ErrNotFound.
func (e *PackageNotFoundError) Unwrap() error {
	return ErrNotFound
}
