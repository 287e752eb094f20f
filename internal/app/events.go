package app

import (
	"fmt"
	"io"
)

// consoleEvents prints run progress for the CLI user. It is telemetry only;
// nothing in the core reacts to it.
type consoleEvents struct {
	out io.Writer
}

func (e *consoleEvents) StartedUploading(count int) {
	fmt.Fprintf(e.out, "Uploading %d file(s)...\n", count)
}

func (e *consoleEvents) UploadedPhoto(absPath string) {
	fmt.Fprintf(e.out, "  uploaded %s\n", absPath)
}

func (e *consoleEvents) FinishedUploading() {}

func (e *consoleEvents) StartedDeleting(count int) {
	fmt.Fprintf(e.out, "Removing %d file(s)...\n", count)
}

func (e *consoleEvents) DeletedPhoto(fileName string) {
	fmt.Fprintf(e.out, "  removed %s\n", fileName)
}

func (e *consoleEvents) FinishedDeleting() {}

func (e *consoleEvents) FoundTrashAlbum(albumID string) {}

func (e *consoleEvents) CreatedTrashAlbum(albumID string) {
	fmt.Fprintln(e.out, "Created trash album")
}

func (e *consoleEvents) AddedMediaItemsToTrash(count int) {
	fmt.Fprintf(e.out, "Moved %d item(s) to the trash album\n", count)
}
