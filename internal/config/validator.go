package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	oerrors "github.com/draftpush/cli/internal/errors"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// Validator validates configuration files against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate checks already-decoded configuration data. Unknown keys are
// rejected because #Config is closed.
func (v *Validator) Validate(data map[string]any) error {
	value := v.ctx.Encode(data)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var msgs []string
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return oerrors.NewValidationError(
			strings.Join(msgs, "\n  "),
			"",
			"",
			"Run 'draftpush config init --force' to regenerate a valid config file",
		)
	}
	return nil
}

// ValidateFile reads the YAML file at path and validates it.
func (v *Validator) ValidateFile(fsys afero.Fs, path string) error {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return oerrors.NewValidationError(err.Error(), path, "", "Check the YAML syntax")
	}
	return v.Validate(data)
}
