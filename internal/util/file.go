package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
)

// ExpandPath resolves a leading ~ and any symlinks of the given path.
// If the path does not exist (yet), only the home directory expansion is applied.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return path, err
	}
	evaluated, err := filepath.EvalSymlinks(expanded)
	if err != nil {
		return expanded, nil
	}
	return evaluated, nil
}

// WriteFileAtomic replaces the content of the file at path, so readers never observe a partial write
func WriteFileAtomic(path string, data []byte) error {
	resolved, err := ExpandPath(path)
	if err != nil {
		return err
	}
	return atomic.WriteFile(resolved, bytes.NewReader(data))
}

// EnsureParentDir creates the parent directory of the given file path if necessary
func EnsureParentDir(path string) error {
	parentDir := filepath.Dir(path)
	_, err := os.Stat(parentDir)
	if os.IsNotExist(err) {
		return os.MkdirAll(parentDir, 0755)
	}
	return err
}
