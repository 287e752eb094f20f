package gphotos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sethvargo/go-retry"

	"spg-go/internal/spg"
)

// SearchMediaItems pages through the media items of one album, or of the
// whole account when albumID is empty.
func (c *Client) SearchMediaItems(albumID string) ([]spg.MediaItem, error) {
	c.logger.Debug("searching media items", "account", c.name, "album", albumID)

	var items []spg.MediaItem
	pageToken := ""
	for {
		request := map[string]string{}
		if albumID != "" {
			request["albumId"] = albumID
		}
		if pageToken != "" {
			request["pageToken"] = pageToken
		}

		var response struct {
			MediaItems    []wireMediaItem `json:"mediaItems"`
			NextPageToken string          `json:"nextPageToken"`
		}
		if err := c.doJSON(http.MethodPost, c.libraryURL+"/mediaItems:search", nil, request, &response); err != nil {
			return nil, fmt.Errorf("searching media items: %w", err)
		}

		for _, item := range response.MediaItems {
			items = append(items, item.toMediaItem())
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return items, nil
}

// AddUploadedPhotos exchanges upload tokens for permanent media items via
// mediaItems:batchCreate, attaching them to the album when albumID is
// non-empty.
func (c *Client) AddUploadedPhotos(uploadTokens []string, albumID string) ([]spg.MediaItem, error) {
	c.logger.Debug("batch creating media items", "account", c.name, "album", albumID, "count", len(uploadTokens))

	newMediaItems := make([]map[string]any, 0, len(uploadTokens))
	for _, token := range uploadTokens {
		newMediaItems = append(newMediaItems, map[string]any{
			"description":     "",
			"simpleMediaItem": map[string]string{"uploadToken": token},
		})
	}

	request := map[string]any{"newMediaItems": newMediaItems}
	if albumID != "" {
		request["albumId"] = albumID
	}

	var response struct {
		NewMediaItemResults []struct {
			MediaItem wireMediaItem `json:"mediaItem"`
		} `json:"newMediaItemResults"`
	}
	if err := c.doJSON(http.MethodPost, c.libraryURL+"/mediaItems:batchCreate", nil, request, &response); err != nil {
		return nil, fmt.Errorf("batch creating media items: %w", err)
	}

	items := make([]spg.MediaItem, 0, len(response.NewMediaItemResults))
	for _, result := range response.NewMediaItemResults {
		items = append(items, result.MediaItem.toMediaItem())
	}
	return items, nil
}

// UploadPhoto uploads a file in one shot and returns its upload token.
// Only suitable for small files; UploadPhotoInChunks handles the rest.
func (c *Client) UploadPhoto(filePath, fileName string) (string, error) {
	c.logger.Debug("uploading photo", "account", c.name, "path", filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &spg.NotFoundError{Resource: "file", Key: filePath}
		}
		return "", fmt.Errorf("reading %s: %w", filePath, err)
	}

	var token string
	err = c.policy.Do(context.Background(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.libraryURL+"/uploads", bytes.NewReader(data))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		req.Header.Set("X-Goog-Upload-Protocol", "raw")
		req.Header.Set("X-Goog-Upload-File-Name", fileName)

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode != http.StatusOK || len(body) == 0 {
			apiErr := &APIError{Status: resp.StatusCode, URL: c.libraryURL + "/uploads", Body: string(body)}
			if c.policy.IsRetryable(resp.StatusCode) {
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}

		token = string(body)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filePath, err)
	}
	return token, nil
}

// UploadPhotoInChunks uploads a file with the X-Goog-Upload resumable
// protocol: a start request yields an upload URL and the server's chunk
// granularity, the file is sent chunk by chunk at that granularity, and a
// failed chunk is recovered by querying the server for how many bytes it
// received and seeking there.
func (c *Client) UploadPhotoInChunks(filePath, fileName string) (string, error) {
	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &spg.NotFoundError{Resource: "file", Key: filePath}
		}
		return "", fmt.Errorf("stat %s: %w", filePath, err)
	}
	size := info.Size()

	c.logger.Debug("starting chunked upload", "account", c.name, "path", filePath, "mime", mimeType, "size", size)

	uploadURL, chunkSize, err := c.startChunkedUpload(mimeType, size)
	if err != nil {
		return "", fmt.Errorf("initializing chunked upload for %s: %w", filePath, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	var token string
	var offset int64
	buf := make([]byte, chunkSize)

	for offset < size {
		n, err := io.ReadFull(f, buf)
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			err = nil
		}
		if err != nil {
			return "", fmt.Errorf("reading chunk of %s: %w", filePath, err)
		}
		if n == 0 {
			break
		}

		chunk := buf[:n]
		isLast := offset+int64(n) >= size
		command := "upload"
		if isLast {
			command = "upload, finalize"
		}
		c.logger.Debug("uploading chunk", "offset", offset, "bytes", n, "command", command)

		status, body, err := c.uploadChunk(uploadURL, command, offset, chunk)
		if err != nil {
			return "", fmt.Errorf("uploading chunk of %s: %w", filePath, err)
		}

		if status != http.StatusOK {
			// Ask the server how far it got and resume from there.
			received, err := c.queryChunkedUpload(uploadURL)
			if err != nil {
				return "", fmt.Errorf("recovering chunked upload of %s: %w", filePath, err)
			}
			c.logger.Debug("resuming chunked upload", "received", received)
			if _, err := f.Seek(received, io.SeekStart); err != nil {
				return "", fmt.Errorf("seeking in %s: %w", filePath, err)
			}
			offset = received
			continue
		}

		if isLast {
			token = string(body)
		}
		offset += int64(n)
	}

	if token == "" {
		return "", fmt.Errorf("chunked upload of %s produced no upload token", filePath)
	}

	c.logger.Debug("finished chunked upload", "path", filePath)
	return token, nil
}

// startChunkedUpload performs the protocol's start request under the retry
// policy and returns the upload URL and server chunk granularity.
func (c *Client) startChunkedUpload(mimeType string, size int64) (string, int, error) {
	var uploadURL string
	var chunkSize int

	err := c.policy.Do(context.Background(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.libraryURL+"/uploads", nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Goog-Upload-Command", "start")
		req.Header.Set("X-Goog-Upload-Content-Type", mimeType)
		req.Header.Set("X-Goog-Upload-Protocol", "resumable")
		req.Header.Set("X-Goog-Upload-Raw-Size", strconv.FormatInt(size, 10))

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{Status: resp.StatusCode, URL: c.libraryURL + "/uploads", Body: string(body)}
			if c.policy.IsRetryable(resp.StatusCode) {
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}

		uploadURL = resp.Header.Get("X-Goog-Upload-URL")
		chunkSize, err = strconv.Atoi(resp.Header.Get("X-Goog-Upload-Chunk-Granularity"))
		if err != nil {
			return fmt.Errorf("parsing chunk granularity: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return uploadURL, chunkSize, nil
}

// uploadChunk sends one chunk. A non-200 status is not an error here; the
// caller recovers via the protocol's query command instead.
func (c *Client) uploadChunk(uploadURL, command string, offset int64, chunk []byte) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodPost, uploadURL, bytes.NewReader(chunk))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("X-Goog-Upload-Command", command)
	req.Header.Set("X-Goog-Upload-Offset", strconv.FormatInt(offset, 10))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// queryChunkedUpload asks the server for the state of an in-flight upload
// and returns how many bytes it has received so far.
func (c *Client) queryChunkedUpload(uploadURL string) (int64, error) {
	req, err := http.NewRequest(http.MethodPost, uploadURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Goog-Upload-Command", "query")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if status := resp.Header.Get("X-Goog-Upload-Status"); status != "active" {
		return 0, fmt.Errorf("upload is no longer active (status %q)", status)
	}

	received, err := strconv.ParseInt(resp.Header.Get("X-Goog-Upload-Size-Received"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing received size: %w", err)
	}
	return received, nil
}
