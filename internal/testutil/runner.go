package testutil

import (
	"context"
	"errors"
	"strings"
)

// RunnerCall records one CaptureCombined invocation.
type RunnerCall struct {
	Dir  string
	Name string
	Args []string
}

// CommandLine renders the call as "name arg1 arg2".
func (c RunnerCall) CommandLine() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// RunResult is the scripted outcome of a command.
type RunResult struct {
	Output string
	OK     bool
	Err    error
}

// FakeRunner is a scripted toolchain.Runner. Commands without a scripted
// result succeed with empty output.
type FakeRunner struct {
	// Results maps a command line to its outcome.
	Results map[string]RunResult

	// Missing lists binaries LookPath cannot find.
	Missing map[string]bool

	// OnRun, when set, is called after a call is recorded and before its
	// result is returned, typically to write toolchain output into a fake fs.
	OnRun func(RunnerCall)

	Calls []RunnerCall
}

// CaptureCombined implements toolchain.Runner.
func (f *FakeRunner) CaptureCombined(_ context.Context, dir, name string, args ...string) (string, bool, error) {
	call := RunnerCall{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	if f.OnRun != nil {
		f.OnRun(call)
	}

	if res, ok := f.Results[call.CommandLine()]; ok {
		return res.Output, res.OK, res.Err
	}
	return "", true, nil
}

// LookPath implements toolchain.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

// CommandLines returns every recorded call as a command line.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.CommandLine()
	}
	return lines
}
