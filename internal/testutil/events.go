package testutil

import (
	"fmt"

	"spg-go/internal/spg"
)

// EventRecorder captures progress notifications as formatted strings for
// assertion in tests.
type EventRecorder struct {
	Events []string
}

var _ spg.Events = (*EventRecorder)(nil)

func NewEventRecorder() *EventRecorder { return &EventRecorder{} }

func (r *EventRecorder) record(format string, args ...any) {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

func (r *EventRecorder) StartedUploading(count int)   { r.record("started_uploading:%d", count) }
func (r *EventRecorder) UploadedPhoto(absPath string) { r.record("uploaded_photo:%s", absPath) }
func (r *EventRecorder) FinishedUploading()           { r.record("finished_uploading") }

func (r *EventRecorder) StartedDeleting(count int)    { r.record("started_deleting:%d", count) }
func (r *EventRecorder) DeletedPhoto(fileName string) { r.record("deleted_photo:%s", fileName) }
func (r *EventRecorder) FinishedDeleting()            { r.record("finished_deleting") }

func (r *EventRecorder) FoundTrashAlbum(albumID string)   { r.record("found_trash_album:%s", albumID) }
func (r *EventRecorder) CreatedTrashAlbum(albumID string) { r.record("created_trash_album:%s", albumID) }
func (r *EventRecorder) AddedMediaItemsToTrash(count int) { r.record("added_to_trash:%d", count) }
