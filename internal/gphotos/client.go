// Package gphotos is the Google Photos account-client collaborator: an
// OAuth'd HTTP client for the Photos Library API plus the Drive quota
// endpoint. It owns pagination, chunked resumable uploads, and retries on
// transient failures; callers see each operation as a single blocking call.
package gphotos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sethvargo/go-retry"

	"spg-go/internal/spg"
)

const (
	defaultLibraryURL = "https://photoslibrary.googleapis.com/v1"
	defaultQuotaURL   = "https://www.googleapis.com/drive/v3/about"
)

// Client implements spg.Account against the real Google Photos API.
// The http.Client must carry OAuth credentials (see NewAuthorizedHTTPClient).
type Client struct {
	name   string
	http   *http.Client
	policy RetryPolicy
	logger spg.Logger

	libraryURL string
	quotaURL   string
}

// NewClient creates an account client named for diagnostics only.
func NewClient(name string, httpClient *http.Client, policy RetryPolicy, logger spg.Logger) *Client {
	return &Client{
		name:       name,
		http:       httpClient,
		policy:     policy,
		logger:     logger,
		libraryURL: defaultLibraryURL,
		quotaURL:   defaultQuotaURL,
	}
}

// Name returns the configured account name.
func (c *Client) Name() string { return c.name }

// SetBaseURLs overrides the API endpoints. Tests point these at a local
// server.
func (c *Client) SetBaseURLs(libraryURL, quotaURL string) {
	c.libraryURL = libraryURL
	c.quotaURL = quotaURL
}

// GetStorageQuota reads the account's byte quota from the Drive about
// endpoint. The API reports the numbers as decimal strings.
func (c *Client) GetStorageQuota() (spg.StorageQuota, error) {
	var response struct {
		StorageQuota struct {
			Limit string `json:"limit"`
			Usage string `json:"usage"`
		} `json:"storageQuota"`
	}

	query := url.Values{"fields": {"storageQuota"}}
	if err := c.doJSON(http.MethodGet, c.quotaURL, query, nil, &response); err != nil {
		return spg.StorageQuota{}, fmt.Errorf("getting storage quota for %s: %w", c.name, err)
	}

	limit, err := strconv.ParseInt(response.StorageQuota.Limit, 10, 64)
	if err != nil {
		return spg.StorageQuota{}, fmt.Errorf("parsing quota limit %q: %w", response.StorageQuota.Limit, err)
	}
	usage, err := strconv.ParseInt(response.StorageQuota.Usage, 10, 64)
	if err != nil {
		return spg.StorageQuota{}, fmt.Errorf("parsing quota usage %q: %w", response.StorageQuota.Usage, err)
	}

	return spg.StorageQuota{Limit: limit, Usage: usage}, nil
}

// APIError is a non-200 response from the Photos API after retries were
// exhausted or the status was not retryable.
type APIError struct {
	Status int
	URL    string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gphotos API call %s failed with status %d: %s", e.URL, e.Status, e.Body)
}

// doJSON performs one JSON request under the retry policy. Transport errors
// and retryable statuses are retried with backoff; anything else is final.
func (c *Client) doJSON(method, rawURL string, query url.Values, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	return c.policy.Do(context.Background(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if query != nil {
			req.URL.RawQuery = query.Encode()
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{Status: resp.StatusCode, URL: rawURL, Body: string(data)}
			if c.policy.IsRetryable(resp.StatusCode) {
				c.logger.Warn("retrying gphotos call", "url", rawURL, "status", resp.StatusCode)
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}

		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decoding response from %s: %w", rawURL, err)
			}
		}
		return nil
	})
}

// Wire representations shared by the album and media endpoints.

type wireShareInfo struct {
	ShareableURL string `json:"shareableUrl"`
	ShareToken   string `json:"shareToken"`
}

type wireAlbum struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	ShareInfo *wireShareInfo `json:"shareInfo"`
}

func (a wireAlbum) toAlbum() spg.Album {
	album := spg.Album{ID: a.ID, Title: a.Title}
	if a.ShareInfo != nil {
		album.ShareInfo = &spg.ShareInfo{
			ShareableURL: a.ShareInfo.ShareableURL,
			ShareToken:   a.ShareInfo.ShareToken,
		}
	}
	return album
}

type wireMediaItem struct {
	ID       string `json:"id"`
	FileName string `json:"filename"`
}

func (m wireMediaItem) toMediaItem() spg.MediaItem {
	return spg.MediaItem{ID: m.ID, FileName: m.FileName}
}

// Compile-time check that Client implements the collaborator contract.
var _ spg.Account = (*Client)(nil)
