package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/draftpush/cli/internal/errors"
)

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid full config",
			content: "service:\n  endpoint: https://partners.example.com/graphql\n  token: abc\n  timeout: 30s\nlog:\n  timestamps: true\n",
		},
		{
			name:    "empty file",
			content: "",
		},
		{
			name:    "unknown key",
			content: "registry: ghcr.io/acme\n",
			wantErr: true,
		},
		{
			name:    "endpoint without scheme",
			content: "service:\n  endpoint: partners.example.com\n",
			wantErr: true,
		},
		{
			name:    "timestamps not a bool",
			content: "log:\n  timestamps: sometimes\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "/config.yaml", []byte(tt.content), 0o644))

			err := v.ValidateFile(fsys, "/config.yaml")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_ValidateFile_Missing(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.ValidateFile(afero.NewMemMapFs(), "/missing.yaml")
	assert.Error(t, err)
}
