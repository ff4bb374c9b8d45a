// Package metadata reads the schema-version descriptor a build emits next to
// its compiled binary.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	oerrors "github.com/draftpush/cli/internal/errors"
)

// SchemaVersion is a major/minor version pair for one schema.
type SchemaVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// String renders the version as "major.minor".
func (v SchemaVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Metadata maps logical schema names to the versions the artifact was built against.
type Metadata struct {
	SchemaVersions map[string]SchemaVersion `json:"schemaVersions"`

	// UseMsgpack is set when the artifact exchanges data with its host as msgpack.
	UseMsgpack bool `json:"useMsgpack"`
}

// Clone returns a copy that shares no map with m.
func (m Metadata) Clone() Metadata {
	if m.SchemaVersions == nil {
		return m
	}
	versions := make(map[string]SchemaVersion, len(m.SchemaVersions))
	for name, v := range m.SchemaVersions {
		versions[name] = v
	}
	m.SchemaVersions = versions
	return m
}

// SchemaNames returns the declared schema names in sorted order.
func (m Metadata) SchemaNames() []string {
	names := make([]string, 0, len(m.SchemaVersions))
	for name := range m.SchemaVersions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type rawDescriptor struct {
	SchemaVersions map[string]rawVersion `json:"schemaVersions"`
	Flags          struct {
		UseMsgpack bool `json:"use_msgpack"`
	} `json:"flags"`
}

type rawVersion struct {
	Major *json.Number `json:"major"`
	Minor *json.Number `json:"minor"`
}

// Extract reads and validates the descriptor at path. A missing file fails
// with MetadataNotFoundError; malformed content fails with a validation error.
func Extract(fsys afero.Fs, path string) (Metadata, error) {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return Metadata{}, fmt.Errorf("checking metadata file: %w", err)
	}
	if !exists {
		return Metadata{}, &oerrors.MetadataNotFoundError{Path: path}
	}

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading metadata file: %w", err)
	}

	return Parse(raw, path)
}

// Parse decodes descriptor bytes. Comments and trailing commas are tolerated.
// location is used only in error messages.
func Parse(data []byte, location string) (Metadata, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var raw rawDescriptor
	if err := dec.Decode(&raw); err != nil {
		return Metadata{}, oerrors.NewValidationError(
			fmt.Sprintf("malformed metadata: %v", err), location, "", "Rebuild the project to regenerate it")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Metadata{}, oerrors.NewValidationError(
			"malformed metadata: unexpected data after the descriptor", location, "", "Rebuild the project to regenerate it")
	}

	if len(raw.SchemaVersions) == 0 {
		return Metadata{}, oerrors.NewValidationError(
			"no schema versions declared", location, "schemaVersions", "Rebuild the project to regenerate it")
	}

	md := Metadata{
		SchemaVersions: make(map[string]SchemaVersion, len(raw.SchemaVersions)),
		UseMsgpack:     raw.Flags.UseMsgpack,
	}
	for name, rv := range raw.SchemaVersions {
		major, err := versionPart(rv.Major)
		if err != nil {
			return Metadata{}, oerrors.NewValidationError(err.Error(), location, "schemaVersions."+name+".major", "")
		}
		minor, err := versionPart(rv.Minor)
		if err != nil {
			return Metadata{}, oerrors.NewValidationError(err.Error(), location, "schemaVersions."+name+".minor", "")
		}
		md.SchemaVersions[name] = SchemaVersion{Major: major, Minor: minor}
	}

	return md, nil
}

// versionPart accepts a JSON number or a numeric string. Absent values are errors.
func versionPart(n *json.Number) (int, error) {
	if n == nil {
		return 0, fmt.Errorf("version is required")
	}
	v, err := strconv.Atoi(n.String())
	if err != nil || v < 0 {
		return 0, fmt.Errorf("version %q is not a non-negative integer", n.String())
	}
	return v, nil
}
