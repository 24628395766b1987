package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading "~/" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", path, err)
	}
	return absPath, nil
}

// ResolveAndEnsureDBPath expands path and creates its parent directory.
// The in-memory DSN ":memory:" is returned unchanged.
func ResolveAndEnsureDBPath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	targetPath, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	if err := EnsureDir(filepath.Dir(targetPath)); err != nil {
		return "", fmt.Errorf("failed to prepare directory for database: %w", err)
	}
	return targetPath, nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("'%s' exists and is not a directory", dir)
	}
	return nil
}
