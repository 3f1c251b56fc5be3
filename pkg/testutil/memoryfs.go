package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/toolstrap/pkg/filesystem"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemoryFS creates an empty in-memory filesystem.
func NewMemoryFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

// WriteExecutable creates an executable file at path so that PATH lookups
// against fs find it.
func WriteExecutable(t *testing.T, fs types.FS, path string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
}

// ReadFile returns the content of path, failing the test if it is missing.
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether path exists in fs.
func Exists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
