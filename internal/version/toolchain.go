package version

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/draftpush/cli/internal/toolchain"
)

// versionRegex matches version output like "cargo 1.75.0 (1d8b05cdd 2023-11-20)" or "v20.11.0".
var versionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// Tool is a toolchain binary and the arguments that print its version.
type Tool struct {
	Name string
	Args []string
}

// Toolchains lists the binaries the build backends invoke.
var Toolchains = []Tool{
	{Name: "cargo", Args: []string{"--version"}},
	{Name: "node", Args: []string{"--version"}},
	{Name: "npm", Args: []string{"--version"}},
}

// ToolInfo describes an installed toolchain binary.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// String returns a single aligned line for the version report.
func (t ToolInfo) String() string {
	switch {
	case !t.Found:
		return fmt.Sprintf("  %-6s not found", t.Name)
	case t.Version == "":
		return fmt.Sprintf("  %-6s %s (%s)", t.Name, t.Path, t.Message)
	default:
		return fmt.Sprintf("  %-6s %s (%s)", t.Name, t.Version, t.Path)
	}
}

// DetectToolchains probes every tool in Toolchains.
func DetectToolchains(ctx context.Context, runner toolchain.Runner) []ToolInfo {
	infos := make([]ToolInfo, len(Toolchains))
	for i, tool := range Toolchains {
		infos[i] = Detect(ctx, runner, tool)
	}
	return infos
}

// Detect finds tool on PATH and reads its version.
func Detect(ctx context.Context, runner toolchain.Runner, tool Tool) ToolInfo {
	path, err := runner.LookPath(tool.Name)
	if err != nil {
		return ToolInfo{Name: tool.Name, Message: tool.Name + " not found in PATH"}
	}

	out, ok, err := runner.CaptureCombined(ctx, "", path, tool.Args...)
	if err != nil || !ok {
		return ToolInfo{Name: tool.Name, Path: path, Found: true, Message: "failed to get version"}
	}

	v, err := extractVersion(out)
	if err != nil {
		return ToolInfo{Name: tool.Name, Path: path, Found: true, Message: err.Error()}
	}

	return ToolInfo{Name: tool.Name, Version: v, Path: path, Found: true}
}

// extractVersion pulls the first semantic version from output and ensures a
// "v" prefix.
func extractVersion(output string) (string, error) {
	match := versionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: strings.TrimSpace(output)}
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}

type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
