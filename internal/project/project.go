// Package project loads the extension project a push operates on.
//
// A project is a directory holding a .draftpush.yml descriptor and a .env
// file with credentials. The loaded Project is passed explicitly into every
// pipeline stage.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	oerrors "github.com/draftpush/cli/internal/errors"
)

// DescriptorFile is the project descriptor's file name.
const DescriptorFile = ".draftpush.yml"

// BuildDir is the project-relative directory for artifacts and metadata.
const BuildDir = "build"

// Project is the extension project being pushed.
type Project struct {
	// Directory is the absolute project root.
	Directory string `yaml:"-"`

	// Language selects the build backend (assemblyscript, rust).
	Language string `yaml:"language"`

	// ExtensionPointType is the remote extension point, e.g. "payment_filter".
	ExtensionPointType string `yaml:"extension_point_type"`

	// ScriptName names the compiled artifact.
	ScriptName string `yaml:"script_name"`

	// Title is the display name used in the push report. Defaults to ScriptName.
	Title string `yaml:"title,omitempty"`

	// Env holds credentials and the registration id from .env.
	Env Env `yaml:"-"`
}

// Registered reports whether the project already has a remote registration.
func (p *Project) Registered() bool {
	return p.Env.RegistrationID != ""
}

// BuildPath joins elem onto the project's build directory.
func (p *Project) BuildPath(elem ...string) string {
	return filepath.Join(append([]string{p.Directory, BuildDir}, elem...)...)
}

// DisplayTitle returns Title, falling back to ScriptName.
func (p *Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ScriptName
}

// Load reads the project descriptor and .env under dir.
func Load(fsys afero.Fs, dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	descriptor := filepath.Join(abs, DescriptorFile)
	raw, err := afero.ReadFile(fsys, descriptor)
	if err != nil {
		exists, _ := afero.Exists(fsys, descriptor)
		if !exists {
			return nil, oerrors.NewNotFoundError(
				"no project descriptor found",
				descriptor,
				"Run draftpush from the root of an extension project",
			)
		}
		return nil, fmt.Errorf("reading project descriptor: %w", err)
	}

	var p Project
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), descriptor, "", "Check the YAML syntax")
	}
	if err := p.validate(descriptor); err != nil {
		return nil, err
	}
	p.Directory = abs

	env, err := LoadEnv(fsys, abs)
	if err != nil {
		return nil, err
	}
	p.Env = env

	return &p, nil
}

func (p *Project) validate(location string) error {
	required := []struct {
		field string
		value string
	}{
		{"language", p.Language},
		{"extension_point_type", p.ExtensionPointType},
		{"script_name", p.ScriptName},
	}
	for _, r := range required {
		if r.value == "" {
			return oerrors.NewValidationError("field is required", location, r.field, "")
		}
	}
	if filepath.Base(p.ScriptName) != p.ScriptName {
		return oerrors.NewValidationError("must be a plain name without path separators", location, "script_name", "")
	}
	return nil
}
