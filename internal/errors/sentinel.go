package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a schema or descriptor validation failure.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates the remote service could not be reached or refused the request.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a binary, descriptor, package, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrEnvironment indicates required environment values are missing.
	ErrEnvironment = errors.New("environment incomplete")

	// ErrBuild indicates the language toolchain failed.
	ErrBuild = errors.New("build failed")
)
