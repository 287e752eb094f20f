package spg

// FilesystemManager abstracts the two local filesystem reads the core needs,
// so enrichment is testable without touching the real filesystem.
type FilesystemManager interface {
	// Abs resolves a raw (possibly relative) path to an absolute path.
	Abs(rawPath string) (string, error)

	// FileSize returns the size in bytes of the file at absPath.
	// Returns a *NotFoundError when no file exists there.
	FileSize(absPath string) (int64, error)
}
