// Package configui loads the optional schema describing an extension's
// merchant-configurable fields.
package configui

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"

	oerrors "github.com/draftpush/cli/internal/errors"
)

// Filename is the config UI file looked up in the project root.
const Filename = "config-ui.yml"

//go:embed schema/configui.cue
var schemaCUE []byte

// ConfigUI is the config UI file as written by the developer.
// Its content is carried to the service unchanged.
type ConfigUI struct {
	Filename string
	Content  string
}

// JSON converts the YAML content to JSON for the wire.
func (c *ConfigUI) JSON() ([]byte, error) {
	out, err := k8syaml.YAMLToJSON([]byte(c.Content))
	if err != nil {
		return nil, fmt.Errorf("converting %s to JSON: %w", c.Filename, err)
	}
	return out, nil
}

// Load reads and validates <dir>/config-ui.yml. A project without one returns (nil, nil).
func Load(fsys afero.Fs, dir string) (*ConfigUI, error) {
	path := filepath.Join(dir, Filename)
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", Filename, err)
	}
	if !exists {
		return nil, nil
	}

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", Filename, err)
	}

	if err := Validate(raw, path); err != nil {
		return nil, err
	}

	return &ConfigUI{Filename: Filename, Content: string(raw)}, nil
}

// Validate checks YAML content against the embedded schema.
// location is used only in error messages.
func Validate(content []byte, location string) error {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return oerrors.NewValidationError(err.Error(), location, "", "Check the YAML syntax")
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE)
	if schema.Err() != nil {
		return fmt.Errorf("compiling config UI schema: %w", schema.Err())
	}

	value := schema.LookupPath(cue.ParsePath("#ConfigUI")).Unify(ctx.Encode(data))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		var msgs []string
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return oerrors.NewValidationError(
			strings.Join(msgs, "\n  "),
			location,
			"",
			"See the config UI reference for the supported field types",
		)
	}
	return nil
}
