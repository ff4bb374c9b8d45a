package metadata

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/draftpush/cli/internal/errors"
)

const descriptorPath = "/work/foo/build/metadata.json"

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(afero.NewMemMapFs(), descriptorPath)

	var notFound *oerrors.MetadataNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, descriptorPath, notFound.Path)
}

func TestExtract_Valid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected Metadata
	}{
		{
			name:    "string versions",
			content: `{"schemaVersions": {"example": {"major": "1", "minor": "0"}}}`,
			expected: Metadata{SchemaVersions: map[string]SchemaVersion{
				"example": {Major: 1, Minor: 0},
			}},
		},
		{
			name:    "numeric versions and flags",
			content: `{"schemaVersions": {"input": {"major": 2, "minor": 3}, "output": {"major": 1, "minor": 12}}, "flags": {"use_msgpack": true}}`,
			expected: Metadata{
				SchemaVersions: map[string]SchemaVersion{
					"input":  {Major: 2, Minor: 3},
					"output": {Major: 1, Minor: 12},
				},
				UseMsgpack: true,
			},
		},
		{
			name: "comments and trailing commas",
			content: `{
  // emitted by the toolchain
  "schemaVersions": {"example": {"major": 1, "minor": 4,},},
}`,
			expected: Metadata{SchemaVersions: map[string]SchemaVersion{
				"example": {Major: 1, Minor: 4},
			}},
		},
		{
			name:    "trailing comment and newline",
			content: "{\"schemaVersions\": {\"example\": {\"major\": 3, \"minor\": 1}}}\n// generated\n",
			expected: Metadata{SchemaVersions: map[string]SchemaVersion{
				"example": {Major: 3, Minor: 1},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, descriptorPath, []byte(tt.content), 0o644))

			md, err := Extract(fsys, descriptorPath)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, md)
		})
	}
}

func TestExtract_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "not json", content: `schemaVersions: 1`},
		{name: "no schema versions", content: `{}`, field: "schemaVersions"},
		{name: "empty schema versions", content: `{"schemaVersions": {}}`, field: "schemaVersions"},
		{name: "missing minor", content: `{"schemaVersions": {"example": {"major": 1}}}`, field: "schemaVersions.example.minor"},
		{name: "missing major", content: `{"schemaVersions": {"example": {"minor": 1}}}`, field: "schemaVersions.example.major"},
		{name: "fractional major", content: `{"schemaVersions": {"example": {"major": 1.5, "minor": 0}}}`, field: "schemaVersions.example.major"},
		{name: "negative minor", content: `{"schemaVersions": {"example": {"major": 1, "minor": -1}}}`, field: "schemaVersions.example.minor"},
		{name: "trailing garbage", content: `{"schemaVersions": {"example": {"major": 1, "minor": 0}}} xyz`},
		{name: "second document", content: `{"schemaVersions": {"example": {"major": 1, "minor": 0}}}{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, descriptorPath, []byte(tt.content), 0o644))

			_, err := Extract(fsys, descriptorPath)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
			assert.False(t, errors.Is(err, oerrors.ErrNotFound), "malformed content is not reported as missing")

			if tt.field != "" {
				var detail *oerrors.DetailError
				require.True(t, errors.As(err, &detail))
				assert.Equal(t, tt.field, detail.Field)
			}
		})
	}
}

func TestMetadata_SchemaNames(t *testing.T) {
	md := Metadata{SchemaVersions: map[string]SchemaVersion{"b": {}, "a": {}}}
	assert.Equal(t, []string{"a", "b"}, md.SchemaNames())
}

func TestSchemaVersion_String(t *testing.T) {
	assert.Equal(t, "1.12", SchemaVersion{Major: 1, Minor: 12}.String())
}

func TestMetadata_Clone(t *testing.T) {
	md := Metadata{SchemaVersions: map[string]SchemaVersion{"a": {Major: 1}}, UseMsgpack: true}
	c := md.Clone()
	c.SchemaVersions["a"] = SchemaVersion{Major: 5}

	assert.Equal(t, SchemaVersion{Major: 1}, md.SchemaVersions["a"])
	assert.True(t, c.UseMsgpack)
	assert.Nil(t, Metadata{}.Clone().SchemaVersions)
}
