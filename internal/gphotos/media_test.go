package gphotos

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestSearchMediaItems(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mediaItems:search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var request map[string]string
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request["albumId"] != "a1" {
			t.Errorf("unexpected album id %q", request["albumId"])
		}

		switch request["pageToken"] {
		case "":
			w.Write([]byte(`{
				"mediaItems": [{"id": "m1", "filename": "dog.jpg"}],
				"nextPageToken": "page-2"
			}`))
		case "page-2":
			w.Write([]byte(`{"mediaItems": [{"id": "m2", "filename": "cat.jpg"}]}`))
		default:
			t.Errorf("unexpected page token %q", request["pageToken"])
		}
	}))

	items, err := client.SearchMediaItems("a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items across pages, got %d", len(items))
	}
	if items[0].ID != "m1" || items[0].FileName != "dog.jpg" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].ID != "m2" || items[1].FileName != "cat.jpg" {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestAddUploadedPhotos(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mediaItems:batchCreate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var request struct {
			AlbumID       string `json:"albumId"`
			NewMediaItems []struct {
				SimpleMediaItem struct {
					UploadToken string `json:"uploadToken"`
				} `json:"simpleMediaItem"`
			} `json:"newMediaItems"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request.AlbumID != "a1" {
			t.Errorf("unexpected album id %q", request.AlbumID)
		}
		if len(request.NewMediaItems) != 2 || request.NewMediaItems[1].SimpleMediaItem.UploadToken != "tok-2" {
			t.Errorf("unexpected new media items %+v", request.NewMediaItems)
		}

		w.Write([]byte(`{
			"newMediaItemResults": [
				{"mediaItem": {"id": "m1", "filename": "dog.jpg"}},
				{"mediaItem": {"id": "m2", "filename": "cat.jpg"}}
			]
		}`))
	}))

	items, err := client.AddUploadedPhotos([]string{"tok-1", "tok-2"}, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "m1" || items[1].FileName != "cat.jpg" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func writeUploadFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestUploadPhotoInChunks(t *testing.T) {
	t.Run("uploads the file at the server's granularity", func(t *testing.T) {
		var received []byte
		var commands []string
		var offsets []int64
		var sessionURL string

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Header.Get("X-Goog-Upload-Command") {
			case "start":
				if r.Header.Get("X-Goog-Upload-Protocol") != "resumable" {
					t.Error("start request must declare the resumable protocol")
				}
				if r.Header.Get("X-Goog-Upload-Raw-Size") != "10" {
					t.Errorf("unexpected raw size %q", r.Header.Get("X-Goog-Upload-Raw-Size"))
				}
				w.Header().Set("X-Goog-Upload-URL", sessionURL)
				w.Header().Set("X-Goog-Upload-Chunk-Granularity", "4")

			case "upload", "upload, finalize":
				commands = append(commands, r.Header.Get("X-Goog-Upload-Command"))
				offset, _ := strconv.ParseInt(r.Header.Get("X-Goog-Upload-Offset"), 10, 64)
				offsets = append(offsets, offset)

				chunk, _ := io.ReadAll(r.Body)
				received = append(received, chunk...)

				if r.Header.Get("X-Goog-Upload-Command") == "upload, finalize" {
					w.Write([]byte("upload-token"))
				}

			default:
				t.Errorf("unexpected command %q", r.Header.Get("X-Goog-Upload-Command"))
			}
		})

		client, server := newTestClient(t, handler)
		sessionURL = server.URL + "/session"

		token, err := client.UploadPhotoInChunks(writeUploadFile(t, "0123456789"), "photo.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "upload-token" {
			t.Errorf("unexpected token %q", token)
		}
		if string(received) != "0123456789" {
			t.Errorf("server received %q", received)
		}

		wantCommands := []string{"upload", "upload", "upload, finalize"}
		if len(commands) != 3 || commands[2] != wantCommands[2] {
			t.Errorf("unexpected commands %v", commands)
		}
		wantOffsets := []int64{0, 4, 8}
		for i := range wantOffsets {
			if offsets[i] != wantOffsets[i] {
				t.Errorf("unexpected offsets %v", offsets)
				break
			}
		}
	})

	t.Run("recovers a failed chunk by querying the received size", func(t *testing.T) {
		var sessionURL string
		failedOnce := false
		queried := false
		var received []byte

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Header.Get("X-Goog-Upload-Command") {
			case "start":
				w.Header().Set("X-Goog-Upload-URL", sessionURL)
				w.Header().Set("X-Goog-Upload-Chunk-Granularity", "4")

			case "query":
				queried = true
				w.Header().Set("X-Goog-Upload-Status", "active")
				w.Header().Set("X-Goog-Upload-Size-Received", strconv.Itoa(len(received)))

			default:
				offset, _ := strconv.ParseInt(r.Header.Get("X-Goog-Upload-Offset"), 10, 64)
				if offset == 4 && !failedOnce {
					failedOnce = true
					io.Copy(io.Discard, r.Body)
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}

				chunk, _ := io.ReadAll(r.Body)
				received = append(received, chunk...)
				if r.Header.Get("X-Goog-Upload-Command") == "upload, finalize" {
					w.Write([]byte("upload-token"))
				}
			}
		})

		client, server := newTestClient(t, handler)
		sessionURL = server.URL + "/session"

		token, err := client.UploadPhotoInChunks(writeUploadFile(t, "0123456789"), "photo.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "upload-token" {
			t.Errorf("unexpected token %q", token)
		}
		if !queried {
			t.Error("expected the client to query the upload state")
		}
		if string(received) != "0123456789" {
			t.Errorf("server received %q", received)
		}
	})

	t.Run("a missing file fails without any request", func(t *testing.T) {
		requests := 0
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))

		_, err := client.UploadPhotoInChunks(filepath.Join(t.TempDir(), "absent.jpg"), "absent.jpg")
		if err == nil {
			t.Fatal("expected an error for a missing file")
		}
		if requests != 0 {
			t.Errorf("expected no requests, got %d", requests)
		}
	})
}

func TestUploadPhoto(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uploads" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Goog-Upload-Protocol") != "raw" {
			t.Error("single-shot uploads must use the raw protocol")
		}
		if r.Header.Get("X-Goog-Upload-File-Name") != "photo.jpg" {
			t.Errorf("unexpected file name %q", r.Header.Get("X-Goog-Upload-File-Name"))
		}

		body, _ := io.ReadAll(r.Body)
		if string(body) != "raw-bytes" {
			t.Errorf("unexpected body %q", body)
		}
		w.Write([]byte("upload-token"))
	}))

	token, err := client.UploadPhoto(writeUploadFile(t, "raw-bytes"), "photo.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "upload-token" {
		t.Errorf("unexpected token %q", token)
	}
}
