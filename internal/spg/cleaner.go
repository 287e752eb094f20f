package spg

import "fmt"

// trashAlbumTitle is where the cleaner collects media items that no shared
// album references. A human empties it; the cleaner never deletes anything.
const trashAlbumTitle = "Trash"

// Cleaner finds media items on one account that are not in any shared album
// and gathers them into a dedicated trash album for manual deletion.
type Cleaner struct {
	account Account
	events  Events
	logger  Logger
}

// NewCleaner creates a cleaner for one account.
func NewCleaner(account Account, events Events, logger Logger) *Cleaner {
	return &Cleaner{account: account, events: events, logger: logger}
}

// MarkUnalbumedPhotosForTrash moves every media item that is not a member of
// any shared album into the trash album, creating the album if it does not
// exist yet. Returns the number of items moved.
func (c *Cleaner) MarkUnalbumedPhotosForTrash() (int, error) {
	trashAlbum, err := c.findOrCreateTrashAlbum()
	if err != nil {
		return 0, err
	}

	inAlbums, err := c.mediaItemIDsInSharedAlbums()
	if err != nil {
		return 0, err
	}
	c.logger.Debug("found media items in shared albums", "count", len(inAlbums))

	allItems, err := c.account.SearchMediaItems("")
	if err != nil {
		return 0, fmt.Errorf("listing all media items: %w", err)
	}

	var toTrash []string
	for _, item := range allItems {
		if !inAlbums[item.ID] {
			toTrash = append(toTrash, item.ID)
		}
	}

	for start := 0; start < len(toTrash); start += maxItemsPerCall {
		end := min(start+maxItemsPerCall, len(toTrash))
		if err := c.account.AddPhotosToAlbum(trashAlbum.ID, toTrash[start:end]); err != nil {
			return 0, fmt.Errorf("moving media items to trash album: %w", err)
		}
	}

	if len(toTrash) > 0 {
		c.events.AddedMediaItemsToTrash(len(toTrash))
	}
	c.logger.Info("marked unalbumed media items for trash", "count", len(toTrash))
	return len(toTrash), nil
}

func (c *Cleaner) findOrCreateTrashAlbum() (Album, error) {
	albums, err := c.account.ListAlbums()
	if err != nil {
		return Album{}, fmt.Errorf("listing albums: %w", err)
	}

	for _, album := range albums {
		if album.Title == trashAlbumTitle {
			c.events.FoundTrashAlbum(album.ID)
			return album, nil
		}
	}

	album, err := c.account.CreateAlbum(trashAlbumTitle)
	if err != nil {
		return Album{}, fmt.Errorf("creating trash album: %w", err)
	}
	c.events.CreatedTrashAlbum(album.ID)
	c.logger.Debug("created trash album", "id", album.ID)
	return album, nil
}

func (c *Cleaner) mediaItemIDsInSharedAlbums() (map[string]bool, error) {
	inAlbums := make(map[string]bool)

	sharedAlbums, err := c.account.ListSharedAlbums()
	if err != nil {
		return nil, fmt.Errorf("listing shared albums: %w", err)
	}

	for _, album := range sharedAlbums {
		items, err := c.account.SearchMediaItems(album.ID)
		if err != nil {
			return nil, fmt.Errorf("listing media items in album %s: %w", album.ID, err)
		}
		for _, item := range items {
			inAlbums[item.ID] = true
		}
	}

	return inAlbums, nil
}
