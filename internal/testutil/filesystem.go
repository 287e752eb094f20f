package testutil

import (
	"path/filepath"

	"spg-go/internal/spg"
)

// MockFilesystemManager resolves paths against a fixed root and serves file
// sizes from a map, so enrichment tests never touch the real filesystem.
type MockFilesystemManager struct {
	root  string
	files map[string]int64
}

var _ spg.FilesystemManager = (*MockFilesystemManager)(nil)

// NewMockFilesystemManager creates an empty mock rooted at /backup.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		root:  "/backup",
		files: make(map[string]int64),
	}
}

// AddFile registers a file under its absolute path.
func (m *MockFilesystemManager) AddFile(rawPath string, size int64) {
	abs, _ := m.Abs(rawPath)
	m.files[abs] = size
}

func (m *MockFilesystemManager) Abs(rawPath string) (string, error) {
	if filepath.IsAbs(rawPath) {
		return filepath.Clean(rawPath), nil
	}
	return filepath.Join(m.root, rawPath), nil
}

func (m *MockFilesystemManager) FileSize(absPath string) (int64, error) {
	size, ok := m.files[absPath]
	if !ok {
		return 0, &spg.NotFoundError{Resource: "file", Key: absPath}
	}
	return size, nil
}
