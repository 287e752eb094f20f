package spg

import "fmt"

// maxItemsPerCall caps every batched remote mutation (photo add/remove,
// media batch-create), regardless of what the backend would accept.
const maxItemsPerCall = 50

// RemoteMediaItem is a media item within one album, tagged with its owning
// account. IDs are only meaningful within that account; file names are only
// unique within the album.
type RemoteMediaItem struct {
	ID           string
	FileName     string
	AccountIndex int
}

// MediaIndex caches one album's media items for the duration of a run.
// Like AlbumIndex, it owns its caches exclusively and rebuilds them from the
// remote source of truth on Setup.
type MediaIndex struct {
	albumID      string
	accountIndex int
	account      Account
	logger       Logger

	byID         map[string]RemoteMediaItem
	idByFileName map[string]string
}

// NewMediaIndex creates a media index for one album on its owning account.
// Setup must be called before any other method.
func NewMediaIndex(albumID string, accountIndex int, account Account, logger Logger) *MediaIndex {
	return &MediaIndex{
		albumID:      albumID,
		accountIndex: accountIndex,
		account:      account,
		logger:       logger,
		byID:         make(map[string]RemoteMediaItem),
		idByFileName: make(map[string]string),
	}
}

// Setup queries the album's media items and rebuilds the indexes.
func (x *MediaIndex) Setup() error {
	x.byID = make(map[string]RemoteMediaItem)
	x.idByFileName = make(map[string]string)

	items, err := x.account.SearchMediaItems(x.albumID)
	if err != nil {
		return fmt.Errorf("searching media items in album %s: %w", x.albumID, err)
	}

	for _, item := range items {
		x.index(item)
	}

	x.logger.Debug("indexed media items", "album", x.albumID, "count", len(items))
	return nil
}

func (x *MediaIndex) index(item MediaItem) {
	remote := RemoteMediaItem{
		ID:           item.ID,
		FileName:     item.FileName,
		AccountIndex: x.accountIndex,
	}
	x.byID[remote.ID] = remote
	x.idByFileName[remote.FileName] = remote.ID
}

// ContainsFileName reports whether the album contains an item with the name.
func (x *MediaIndex) ContainsFileName(fileName string) bool {
	_, ok := x.idByFileName[fileName]
	return ok
}

// GetByFileName returns the item with the given file name, or a
// *NotFoundError if the album has none.
func (x *MediaIndex) GetByFileName(fileName string) (RemoteMediaItem, error) {
	id, ok := x.idByFileName[fileName]
	if !ok {
		return RemoteMediaItem{}, &NotFoundError{Resource: "media item", Key: fileName}
	}
	return x.byID[id], nil
}

// Count returns the number of media items currently in the album.
func (x *MediaIndex) Count() int {
	return len(x.byID)
}

// Remove detaches the given media items from the album, in batches of at
// most 50 ids per remote call. Every id is validated against the local index
// before any remote call is made, so an unknown id fails with a
// *NotFoundError without mutating anything.
func (x *MediaIndex) Remove(mediaItemIDs []string) error {
	if len(mediaItemIDs) == 0 {
		return nil
	}

	for _, id := range mediaItemIDs {
		if _, ok := x.byID[id]; !ok {
			return &NotFoundError{Resource: "media item", Key: id}
		}
	}

	for start := 0; start < len(mediaItemIDs); start += maxItemsPerCall {
		end := min(start+maxItemsPerCall, len(mediaItemIDs))
		batch := mediaItemIDs[start:end]
		if err := x.account.RemovePhotosFromAlbum(x.albumID, batch); err != nil {
			return fmt.Errorf("removing %d media items from album %s: %w", len(batch), x.albumID, err)
		}
	}

	for _, id := range mediaItemIDs {
		item := x.byID[id]
		delete(x.byID, id)
		delete(x.idByFileName, item.FileName)
	}

	x.logger.Debug("removed media items", "album", x.albumID, "count", len(mediaItemIDs))
	return nil
}

// AddFromUploadTokens exchanges upload tokens for media items attached to
// this album, in batches of at most 50 tokens per remote call, and merges
// each returned item into the index.
func (x *MediaIndex) AddFromUploadTokens(uploadTokens []string) error {
	if len(uploadTokens) == 0 {
		return nil
	}

	for start := 0; start < len(uploadTokens); start += maxItemsPerCall {
		end := min(start+maxItemsPerCall, len(uploadTokens))
		batch := uploadTokens[start:end]

		items, err := x.account.AddUploadedPhotos(batch, x.albumID)
		if err != nil {
			return fmt.Errorf("adding %d uploads to album %s: %w", len(batch), x.albumID, err)
		}

		for _, item := range items {
			x.index(item)
		}
	}

	x.logger.Debug("added media items", "album", x.albumID, "count", len(uploadTokens))
	return nil
}
