package utils

import (
	"fmt"
	"os"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)

	if err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)

	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// EnsureDir creates dir and its parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}
