// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/draftpush/cli/internal/project"
)

// ProjectDir is the directory fake projects live in.
const ProjectDir = "/work/script"

// WriteFile creates a file with the given content, creating parent directories.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string) string {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// NewProject returns a registered project with complete credentials rooted at ProjectDir.
func NewProject(language, scriptName string) *project.Project {
	return &project.Project{
		Directory:          ProjectDir,
		Language:           language,
		ExtensionPointType: "discount",
		ScriptName:         scriptName,
		Title:              "Test Script",
		Env: project.Env{
			APIKey:         "apikey",
			Secret:         "secret",
			Shop:           "store.example.com",
			RegistrationID: "42",
		},
	}
}

// MetadataJSON is a minimal valid metadata descriptor.
const MetadataJSON = `{"schemaVersions": {"example": {"major": "1", "minor": "0"}}}`
