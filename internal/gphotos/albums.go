package gphotos

import (
	"fmt"
	"net/http"
	"net/url"

	"spg-go/internal/spg"
)

// ListSharedAlbums pages through every shared album visible to the account.
func (c *Client) ListSharedAlbums() ([]spg.Album, error) {
	c.logger.Debug("listing shared albums", "account", c.name)

	var albums []spg.Album
	pageToken := ""
	for {
		var response struct {
			SharedAlbums  []wireAlbum `json:"sharedAlbums"`
			NextPageToken string      `json:"nextPageToken"`
		}

		query := url.Values{"excludeNonAppCreatedData": {"false"}}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}
		if err := c.doJSON(http.MethodGet, c.libraryURL+"/sharedAlbums", query, nil, &response); err != nil {
			return nil, fmt.Errorf("listing shared albums: %w", err)
		}

		for _, album := range response.SharedAlbums {
			albums = append(albums, album.toAlbum())
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return albums, nil
}

// ListAlbums pages through every album owned by the account.
func (c *Client) ListAlbums() ([]spg.Album, error) {
	c.logger.Debug("listing albums", "account", c.name)

	var albums []spg.Album
	pageToken := ""
	for {
		var response struct {
			Albums        []wireAlbum `json:"albums"`
			NextPageToken string      `json:"nextPageToken"`
		}

		query := url.Values{"excludeNonAppCreatedData": {"false"}}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}
		if err := c.doJSON(http.MethodGet, c.libraryURL+"/albums", query, nil, &response); err != nil {
			return nil, fmt.Errorf("listing albums: %w", err)
		}

		for _, album := range response.Albums {
			albums = append(albums, album.toAlbum())
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return albums, nil
}

// CreateAlbum creates a new unshared album.
func (c *Client) CreateAlbum(title string) (spg.Album, error) {
	c.logger.Debug("creating album", "account", c.name, "title", title)

	request := map[string]any{"album": map[string]string{"title": title}}
	var response wireAlbum
	if err := c.doJSON(http.MethodPost, c.libraryURL+"/albums", nil, request, &response); err != nil {
		return spg.Album{}, fmt.Errorf("creating album %q: %w", title, err)
	}
	return response.toAlbum(), nil
}

// ShareAlbum shares an album, non-collaborative and non-commentable.
func (c *Client) ShareAlbum(albumID string) (spg.ShareInfo, error) {
	c.logger.Debug("sharing album", "account", c.name, "album", albumID)

	request := map[string]any{
		"sharedAlbumOptions": map[string]bool{
			"isCollaborative": false,
			"isCommentable":   false,
		},
	}
	var response struct {
		ShareInfo wireShareInfo `json:"shareInfo"`
	}
	if err := c.doJSON(http.MethodPost, c.libraryURL+"/albums/"+albumID+":share", nil, request, &response); err != nil {
		return spg.ShareInfo{}, fmt.Errorf("sharing album %s: %w", albumID, err)
	}
	return spg.ShareInfo{
		ShareableURL: response.ShareInfo.ShareableURL,
		ShareToken:   response.ShareInfo.ShareToken,
	}, nil
}

// UnshareAlbum revokes sharing on an album.
func (c *Client) UnshareAlbum(albumID string) error {
	c.logger.Debug("unsharing album", "account", c.name, "album", albumID)

	if err := c.doJSON(http.MethodPost, c.libraryURL+"/albums/"+albumID+":unshare", nil, nil, nil); err != nil {
		return fmt.Errorf("unsharing album %s: %w", albumID, err)
	}
	return nil
}

// JoinAlbum joins a shared album by its share token.
func (c *Client) JoinAlbum(shareToken string) (spg.Album, error) {
	c.logger.Debug("joining shared album", "account", c.name)

	request := map[string]string{"shareToken": shareToken}
	var response struct {
		Album wireAlbum `json:"album"`
	}
	if err := c.doJSON(http.MethodPost, c.libraryURL+"/sharedAlbums:join", nil, request, &response); err != nil {
		return spg.Album{}, fmt.Errorf("joining shared album: %w", err)
	}
	return response.Album.toAlbum(), nil
}

// UpdateAlbumTitle renames an album.
func (c *Client) UpdateAlbumTitle(albumID, newTitle string) (spg.Album, error) {
	c.logger.Debug("renaming album", "account", c.name, "album", albumID, "title", newTitle)

	query := url.Values{"updateMask": {"title"}}
	request := map[string]string{"title": newTitle}
	var response wireAlbum
	if err := c.doJSON(http.MethodPatch, c.libraryURL+"/albums/"+albumID, query, request, &response); err != nil {
		return spg.Album{}, fmt.Errorf("renaming album %s: %w", albumID, err)
	}
	return response.toAlbum(), nil
}

// AddPhotosToAlbum attaches existing media items to an album.
func (c *Client) AddPhotosToAlbum(albumID string, mediaItemIDs []string) error {
	c.logger.Debug("adding photos to album", "account", c.name, "album", albumID, "count", len(mediaItemIDs))

	request := map[string]any{"mediaItemIds": mediaItemIDs}
	if err := c.doJSON(http.MethodPost, c.libraryURL+"/albums/"+albumID+":batchAddMediaItems", nil, request, nil); err != nil {
		return fmt.Errorf("adding photos to album %s: %w", albumID, err)
	}
	return nil
}

// RemovePhotosFromAlbum detaches media items from an album.
func (c *Client) RemovePhotosFromAlbum(albumID string, mediaItemIDs []string) error {
	c.logger.Debug("removing photos from album", "account", c.name, "album", albumID, "count", len(mediaItemIDs))

	request := map[string]any{"mediaItemIds": mediaItemIDs}
	if err := c.doJSON(http.MethodPost, c.libraryURL+"/albums/"+albumID+":batchRemoveMediaItems", nil, request, nil); err != nil {
		return fmt.Errorf("removing photos from album %s: %w", albumID, err)
	}
	return nil
}
