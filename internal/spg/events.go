package spg

// Events receives progress notifications from a run. It is pure telemetry:
// implementations must not influence control flow, and the core never makes
// decisions based on what an observer does.
type Events interface {
	StartedUploading(count int)
	UploadedPhoto(absPath string)
	FinishedUploading()

	StartedDeleting(count int)
	DeletedPhoto(fileName string)
	FinishedDeleting()

	FoundTrashAlbum(albumID string)
	CreatedTrashAlbum(albumID string)
	AddedMediaItemsToTrash(count int)
}

// NopEvents ignores all notifications. Used when no observer is configured.
type NopEvents struct{}

func NewNopEvents() *NopEvents { return &NopEvents{} }

func (*NopEvents) StartedUploading(int)        {}
func (*NopEvents) UploadedPhoto(string)        {}
func (*NopEvents) FinishedUploading()          {}
func (*NopEvents) StartedDeleting(int)         {}
func (*NopEvents) DeletedPhoto(string)         {}
func (*NopEvents) FinishedDeleting()           {}
func (*NopEvents) FoundTrashAlbum(string)      {}
func (*NopEvents) CreatedTrashAlbum(string)    {}
func (*NopEvents) AddedMediaItemsToTrash(int)  {}
