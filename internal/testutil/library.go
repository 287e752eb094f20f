// Package testutil provides in-memory fakes for testing the core without
// real accounts or a real filesystem.
package testutil

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"spg-go/internal/spg"
)

// FakeLibrary is the shared backing store behind a set of fake accounts,
// standing in for Google's side of the world. Accounts created over the same
// library see each other's shared albums the way pool accounts do.
type FakeLibrary struct {
	albums     map[string]*fakeAlbum
	mediaItems map[string]*fakeMediaItem
	uploads    map[string]*fakeUpload
}

type fakeAlbum struct {
	id           string
	title        string
	ownerID      string
	shareInfo    *spg.ShareInfo
	mediaItemIDs map[string]bool
}

type fakeMediaItem struct {
	id       string
	fileName string
	ownerID  string
}

// fakeUpload is an upload token that has not been exchanged yet.
type fakeUpload struct {
	fileName string
	ownerID  string
}

// NewFakeLibrary creates an empty fake photo library.
func NewFakeLibrary() *FakeLibrary {
	return &FakeLibrary{
		albums:     make(map[string]*fakeAlbum),
		mediaItems: make(map[string]*fakeMediaItem),
		uploads:    make(map[string]*fakeUpload),
	}
}

// SeedAlbum creates an album owned by the given account, optionally shared,
// and returns its id. Use it to arrange pre-existing remote state.
func (l *FakeLibrary) SeedAlbum(owner *FakeAccount, title string, shared bool) string {
	id := uuid.New().String()
	album := &fakeAlbum{
		id:           id,
		title:        title,
		ownerID:      owner.id,
		mediaItemIDs: make(map[string]bool),
	}
	if shared {
		album.shareInfo = newShareInfo(id)
	}
	l.albums[id] = album
	return id
}

// SeedMediaItem creates a media item owned by the given account and attaches
// it to the album when albumID is non-empty. Returns the item id.
func (l *FakeLibrary) SeedMediaItem(owner *FakeAccount, albumID, fileName string) string {
	id := uuid.New().String()
	l.mediaItems[id] = &fakeMediaItem{id: id, fileName: fileName, ownerID: owner.id}
	if albumID != "" {
		l.albums[albumID].mediaItemIDs[id] = true
	}
	return id
}

func newShareInfo(albumID string) *spg.ShareInfo {
	return &spg.ShareInfo{
		ShareableURL: "http://photos.google.test/shared-albums/" + albumID,
		ShareToken:   uuid.New().String(),
	}
}

// FindAlbumByTitle returns the album with the given title, or ok=false when
// no album has the title.
func (l *FakeLibrary) FindAlbumByTitle(title string) (spg.Album, bool) {
	for _, album := range l.albums {
		if album.title == title {
			return spg.Album{ID: album.id, Title: album.title, ShareInfo: album.shareInfo}, true
		}
	}
	return spg.Album{}, false
}

// AlbumCount returns the number of albums in the library.
func (l *FakeLibrary) AlbumCount() int {
	return len(l.albums)
}

// IsShared reports whether the album with the given id is shared.
func (l *FakeLibrary) IsShared(albumID string) bool {
	album, ok := l.albums[albumID]
	return ok && album.shareInfo != nil
}

// AlbumTitle returns the current title of an album.
func (l *FakeLibrary) AlbumTitle(albumID string) string {
	if album, ok := l.albums[albumID]; ok {
		return album.title
	}
	return ""
}

// FileNamesInAlbum returns the sorted file names currently in an album.
func (l *FakeLibrary) FileNamesInAlbum(albumID string) []string {
	album, ok := l.albums[albumID]
	if !ok {
		return nil
	}

	var names []string
	for id := range album.mediaItemIDs {
		names = append(names, l.mediaItems[id].fileName)
	}
	sort.Strings(names)
	return names
}

func (l *FakeLibrary) albumOrErr(albumID string) (*fakeAlbum, error) {
	album, ok := l.albums[albumID]
	if !ok {
		return nil, fmt.Errorf("fake library: album %s does not exist", albumID)
	}
	return album, nil
}
