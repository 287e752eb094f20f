// Package fs implements spg.FilesystemManager against the real filesystem.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"spg-go/internal/spg"
)

// OSFilesystemManager reads path metadata from the host filesystem.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a filesystem manager backed by the OS.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Abs resolves a raw path relative to the current working directory.
func (*OSFilesystemManager) Abs(rawPath string) (string, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", rawPath, err)
	}
	return absPath, nil
}

// FileSize stats the file and returns its size in bytes.
func (*OSFilesystemManager) FileSize(absPath string) (int64, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, &spg.NotFoundError{Resource: "file", Key: absPath}
		}
		return 0, fmt.Errorf("stat %q: %w", absPath, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("path is a directory: %s", absPath)
	}
	return info.Size(), nil
}

// Compile-time check that OSFilesystemManager implements the interface.
var _ spg.FilesystemManager = (*OSFilesystemManager)(nil)
