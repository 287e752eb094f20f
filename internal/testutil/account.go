package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"spg-go/internal/spg"
)

// FakeAccount is an in-memory spg.Account over a shared FakeLibrary. The
// quota is a plain field so tests can model capacity in whatever unit the
// diffs under test use.
type FakeAccount struct {
	id    string
	name  string
	lib   *FakeLibrary
	Quota spg.StorageQuota

	// Calls records the name of every mutating method invoked, in order.
	Calls []string
}

var _ spg.Account = (*FakeAccount)(nil)

// NewFakeAccount creates an account over the given library with the given
// storage quota.
func NewFakeAccount(lib *FakeLibrary, name string, quota spg.StorageQuota) *FakeAccount {
	return &FakeAccount{
		id:    uuid.New().String(),
		name:  name,
		lib:   lib,
		Quota: quota,
	}
}

func (f *FakeAccount) GetStorageQuota() (spg.StorageQuota, error) {
	return f.Quota, nil
}

func (f *FakeAccount) ListSharedAlbums() ([]spg.Album, error) {
	var albums []spg.Album
	for _, album := range f.lib.albums {
		if album.ownerID == f.id && album.shareInfo != nil {
			albums = append(albums, spg.Album{ID: album.id, Title: album.title, ShareInfo: album.shareInfo})
		}
	}
	return albums, nil
}

func (f *FakeAccount) ListAlbums() ([]spg.Album, error) {
	var albums []spg.Album
	for _, album := range f.lib.albums {
		if album.ownerID == f.id {
			albums = append(albums, spg.Album{ID: album.id, Title: album.title, ShareInfo: album.shareInfo})
		}
	}
	return albums, nil
}

func (f *FakeAccount) CreateAlbum(title string) (spg.Album, error) {
	f.Calls = append(f.Calls, "CreateAlbum")
	id := uuid.New().String()
	f.lib.albums[id] = &fakeAlbum{
		id:           id,
		title:        title,
		ownerID:      f.id,
		mediaItemIDs: make(map[string]bool),
	}
	return spg.Album{ID: id, Title: title}, nil
}

func (f *FakeAccount) ShareAlbum(albumID string) (spg.ShareInfo, error) {
	f.Calls = append(f.Calls, "ShareAlbum")
	album, err := f.ownedAlbum(albumID)
	if err != nil {
		return spg.ShareInfo{}, err
	}
	album.shareInfo = newShareInfo(album.id)
	return *album.shareInfo, nil
}

func (f *FakeAccount) UnshareAlbum(albumID string) error {
	f.Calls = append(f.Calls, "UnshareAlbum")
	album, err := f.ownedAlbum(albumID)
	if err != nil {
		return err
	}
	album.shareInfo = nil
	return nil
}

func (f *FakeAccount) UpdateAlbumTitle(albumID, newTitle string) (spg.Album, error) {
	f.Calls = append(f.Calls, "UpdateAlbumTitle")
	album, err := f.ownedAlbum(albumID)
	if err != nil {
		return spg.Album{}, err
	}
	album.title = newTitle
	return spg.Album{ID: album.id, Title: album.title, ShareInfo: album.shareInfo}, nil
}

func (f *FakeAccount) AddPhotosToAlbum(albumID string, mediaItemIDs []string) error {
	f.Calls = append(f.Calls, "AddPhotosToAlbum")
	if len(mediaItemIDs) > 50 {
		return fmt.Errorf("fake account: batch of %d exceeds the 50 item limit", len(mediaItemIDs))
	}
	album, err := f.lib.albumOrErr(albumID)
	if err != nil {
		return err
	}
	for _, id := range mediaItemIDs {
		if _, ok := f.lib.mediaItems[id]; !ok {
			return fmt.Errorf("fake account: media item %s does not exist", id)
		}
		album.mediaItemIDs[id] = true
	}
	return nil
}

func (f *FakeAccount) RemovePhotosFromAlbum(albumID string, mediaItemIDs []string) error {
	f.Calls = append(f.Calls, "RemovePhotosFromAlbum")
	if len(mediaItemIDs) > 50 {
		return fmt.Errorf("fake account: batch of %d exceeds the 50 item limit", len(mediaItemIDs))
	}
	album, err := f.lib.albumOrErr(albumID)
	if err != nil {
		return err
	}
	for _, id := range mediaItemIDs {
		if !album.mediaItemIDs[id] {
			return fmt.Errorf("fake account: media item %s is not in album %s", id, albumID)
		}
	}
	for _, id := range mediaItemIDs {
		delete(album.mediaItemIDs, id)
	}
	return nil
}

func (f *FakeAccount) SearchMediaItems(albumID string) ([]spg.MediaItem, error) {
	if albumID == "" {
		var items []spg.MediaItem
		for _, item := range f.lib.mediaItems {
			if item.ownerID == f.id {
				items = append(items, spg.MediaItem{ID: item.id, FileName: item.fileName})
			}
		}
		return items, nil
	}

	album, err := f.lib.albumOrErr(albumID)
	if err != nil {
		return nil, err
	}
	var items []spg.MediaItem
	for id := range album.mediaItemIDs {
		item := f.lib.mediaItems[id]
		items = append(items, spg.MediaItem{ID: item.id, FileName: item.fileName})
	}
	return items, nil
}

func (f *FakeAccount) AddUploadedPhotos(uploadTokens []string, albumID string) ([]spg.MediaItem, error) {
	f.Calls = append(f.Calls, "AddUploadedPhotos")
	if len(uploadTokens) > 50 {
		return nil, fmt.Errorf("fake account: batch of %d exceeds the 50 item limit", len(uploadTokens))
	}

	var album *fakeAlbum
	if albumID != "" {
		var err error
		album, err = f.lib.albumOrErr(albumID)
		if err != nil {
			return nil, err
		}
	}

	items := make([]spg.MediaItem, 0, len(uploadTokens))
	for _, token := range uploadTokens {
		upload, ok := f.lib.uploads[token]
		if !ok {
			return nil, fmt.Errorf("fake account: unknown upload token %s", token)
		}
		delete(f.lib.uploads, token)

		id := uuid.New().String()
		f.lib.mediaItems[id] = &fakeMediaItem{id: id, fileName: upload.fileName, ownerID: upload.ownerID}
		if album != nil {
			album.mediaItemIDs[id] = true
		}
		items = append(items, spg.MediaItem{ID: id, FileName: upload.fileName})
	}
	return items, nil
}

func (f *FakeAccount) UploadPhotoInChunks(filePath, fileName string) (string, error) {
	f.Calls = append(f.Calls, "UploadPhotoInChunks")
	token := uuid.New().String()
	f.lib.uploads[token] = &fakeUpload{fileName: fileName, ownerID: f.id}
	return token, nil
}

// CallCount returns how many times a mutating method was invoked.
func (f *FakeAccount) CallCount(method string) int {
	count := 0
	for _, call := range f.Calls {
		if call == method {
			count++
		}
	}
	return count
}

func (f *FakeAccount) ownedAlbum(albumID string) (*fakeAlbum, error) {
	album, err := f.lib.albumOrErr(albumID)
	if err != nil {
		return nil, err
	}
	if album.ownerID != f.id {
		return nil, fmt.Errorf("fake account: album %s is not owned by %s", albumID, f.name)
	}
	return album, nil
}
