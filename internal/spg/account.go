package spg

// StorageQuota is an account's storage limit and current usage, in whatever
// unit the backend reports. The allocator only ever computes Limit - Usage,
// so the unit just has to match what populates EnrichedDiff.FileSizeInBytes.
type StorageQuota struct {
	Limit int64
	Usage int64
}

// ShareInfo holds the sharing state of a shared album.
type ShareInfo struct {
	ShareableURL string
	ShareToken   string
}

// Album is an album as reported by one account, before it is indexed.
type Album struct {
	ID        string
	Title     string
	ShareInfo *ShareInfo // nil when the album is not shared
}

// MediaItem is a single photo or video attached to an account.
type MediaItem struct {
	ID       string
	FileName string
}

// Account is one Google-Photos-account-equivalent backend in the pool.
// Implementations own transport concerns entirely: pagination, chunked
// resumable uploads, and retry-with-backoff on transient HTTP failures.
// The core treats every call as either eventually successful or a final
// hard failure.
type Account interface {
	// GetStorageQuota returns the account's storage limit and usage.
	GetStorageQuota() (StorageQuota, error)

	// ListSharedAlbums returns every shared album visible to the account.
	ListSharedAlbums() ([]Album, error)

	// ListAlbums returns every album owned by the account, shared or not.
	ListAlbums() ([]Album, error)

	// CreateAlbum creates a new (unshared) album.
	CreateAlbum(title string) (Album, error)

	// ShareAlbum shares an album and returns its share info.
	ShareAlbum(albumID string) (ShareInfo, error)

	// UnshareAlbum revokes sharing on an album.
	UnshareAlbum(albumID string) error

	// UpdateAlbumTitle renames an album and returns the updated album.
	UpdateAlbumTitle(albumID, newTitle string) (Album, error)

	// AddPhotosToAlbum attaches existing media items to an album.
	AddPhotosToAlbum(albumID string, mediaItemIDs []string) error

	// RemovePhotosFromAlbum detaches media items from an album.
	RemovePhotosFromAlbum(albumID string, mediaItemIDs []string) error

	// SearchMediaItems returns the media items in an album, or every media
	// item in the account when albumID is empty.
	SearchMediaItems(albumID string) ([]MediaItem, error)

	// AddUploadedPhotos exchanges upload tokens for permanent media items,
	// attaching them to the album when albumID is non-empty.
	AddUploadedPhotos(uploadTokens []string, albumID string) ([]MediaItem, error)

	// UploadPhotoInChunks uploads a file's bytes and returns an upload token.
	UploadPhotoInChunks(filePath, fileName string) (string, error)
}
