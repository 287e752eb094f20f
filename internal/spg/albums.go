package spg

import "fmt"

// RemoteAlbum is a shared album tagged with the index of the account that
// owns it. It is the unit of cross-account placement.
type RemoteAlbum struct {
	ID           string
	Title        string
	AccountIndex int
	ShareInfo    *ShareInfo
}

// IsShared reports whether the album currently has share info.
func (a RemoteAlbum) IsShared() bool {
	return a.ShareInfo != nil
}

// AlbumIndex is the authoritative view, for one run, of which shared albums
// exist across every account in the pool. It owns its caches exclusively for
// the duration of the run; there is no persisted state, so Setup rebuilds
// everything from the remote source of truth.
type AlbumIndex struct {
	accounts []Account
	logger   Logger

	byID      map[string]RemoteAlbum
	idByTitle map[string]string
}

// NewAlbumIndex creates an index over the given account pool.
// Setup must be called before any other method.
func NewAlbumIndex(accounts []Account, logger Logger) *AlbumIndex {
	return &AlbumIndex{
		accounts:  accounts,
		logger:    logger,
		byID:      make(map[string]RemoteAlbum),
		idByTitle: make(map[string]string),
	}
}

// Setup queries every account for its shared albums and rebuilds the
// title and id indexes from scratch. It may be called again to refresh.
func (x *AlbumIndex) Setup() error {
	x.byID = make(map[string]RemoteAlbum)
	x.idByTitle = make(map[string]string)

	for accountIndex, account := range x.accounts {
		albums, err := account.ListSharedAlbums()
		if err != nil {
			return fmt.Errorf("listing shared albums on account %d: %w", accountIndex, err)
		}

		for _, album := range albums {
			remote := RemoteAlbum{
				ID:           album.ID,
				Title:        album.Title,
				AccountIndex: accountIndex,
				ShareInfo:    album.ShareInfo,
			}
			x.byID[remote.ID] = remote
			x.idByTitle[remote.Title] = remote.ID
		}

		x.logger.Debug("indexed shared albums", "account", accountIndex, "count", len(albums))
	}

	return nil
}

// ContainsTitle reports whether any account hosts a shared album with the
// given title.
func (x *AlbumIndex) ContainsTitle(title string) bool {
	_, ok := x.idByTitle[title]
	return ok
}

// GetByTitle returns the indexed album with the given title, or a
// *NotFoundError if no account hosts one.
func (x *AlbumIndex) GetByTitle(title string) (RemoteAlbum, error) {
	id, ok := x.idByTitle[title]
	if !ok {
		return RemoteAlbum{}, &NotFoundError{Resource: "album", Key: title}
	}
	return x.byID[id], nil
}

// Create creates a new remote album on the given account, shares it, and
// indexes it. Titles are unique across the whole pool, so a collision with
// any account's album is an *AlreadyExistsError, not an overwrite.
func (x *AlbumIndex) Create(accountIndex int, title string) (RemoteAlbum, error) {
	if x.ContainsTitle(title) {
		return RemoteAlbum{}, &AlreadyExistsError{Resource: "album", Key: title}
	}

	account := x.accounts[accountIndex]

	album, err := account.CreateAlbum(title)
	if err != nil {
		return RemoteAlbum{}, fmt.Errorf("creating album %q on account %d: %w", title, accountIndex, err)
	}

	shareInfo, err := account.ShareAlbum(album.ID)
	if err != nil {
		return RemoteAlbum{}, fmt.Errorf("sharing album %q on account %d: %w", title, accountIndex, err)
	}

	remote := RemoteAlbum{
		ID:           album.ID,
		Title:        album.Title,
		AccountIndex: accountIndex,
		ShareInfo:    &shareInfo,
	}
	x.byID[remote.ID] = remote
	x.idByTitle[remote.Title] = remote.ID

	x.logger.Debug("created shared album", "title", title, "account", accountIndex, "id", remote.ID)
	return remote, nil
}

// Rename renames an indexed album and re-indexes it under the new title.
// Fails with *NotFoundError if the id is unknown and *AlreadyExistsError if
// the new title is already taken anywhere in the pool.
func (x *AlbumIndex) Rename(albumID, newTitle string) (RemoteAlbum, error) {
	old, ok := x.byID[albumID]
	if !ok {
		return RemoteAlbum{}, &NotFoundError{Resource: "album", Key: albumID}
	}
	if x.ContainsTitle(newTitle) {
		return RemoteAlbum{}, &AlreadyExistsError{Resource: "album", Key: newTitle}
	}

	account := x.accounts[old.AccountIndex]
	updated, err := account.UpdateAlbumTitle(albumID, newTitle)
	if err != nil {
		return RemoteAlbum{}, fmt.Errorf("renaming album %q to %q: %w", old.Title, newTitle, err)
	}

	remote := RemoteAlbum{
		ID:           updated.ID,
		Title:        updated.Title,
		AccountIndex: old.AccountIndex,
		ShareInfo:    old.ShareInfo,
	}

	delete(x.byID, old.ID)
	delete(x.idByTitle, old.Title)
	x.byID[remote.ID] = remote
	x.idByTitle[remote.Title] = remote.ID

	x.logger.Debug("renamed album", "from", old.Title, "to", newTitle)
	return remote, nil
}
