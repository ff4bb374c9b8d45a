package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no tilde", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path without tilde", input: "relative/path", expected: "relative/path"},
		{name: "tilde only", input: "~", expected: homeDir},
		{name: "tilde with path", input: "~/.draftpush/config.yaml", expected: filepath.Join(homeDir, ".draftpush/config.yaml")},
		{name: "tilde username unsupported", input: "~other/x", expected: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("DRAFTPUSH_CONFIG", "/custom/config.yaml")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/custom/config.yaml", got)
	})

	t.Run("default under home", func(t *testing.T) {
		t.Setenv("DRAFTPUSH_CONFIG", "")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(".draftpush", "config.yaml"), filepath.Join(filepath.Base(filepath.Dir(got)), filepath.Base(got)))
	})
}
