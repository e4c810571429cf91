package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "torques.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

	// WHEN
	err := WriteFileAtomic(path, []byte("[1,2]"))

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "[1,2]", string(content))
}

func TestEnsureParentDir(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "a", "b", "base2go.db")

	// WHEN
	err := EnsureParentDir(path)

	// THEN
	assert.NoError(t, err)
	info, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExpandPath_NonExisting(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "missing.json")

	// WHEN
	result, err := ExpandPath(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, path, result)
}
