package spg

import "fmt"

// Uploader uploads file bytes to one account, sequentially, and collects the
// resulting upload tokens. The actual chunked transfer belongs to the
// account client; this only drives it and reports progress.
type Uploader struct {
	account Account
	events  Events
	logger  Logger
}

// NewUploader creates an uploader for one account.
func NewUploader(account Account, events Events, logger Logger) *Uploader {
	return &Uploader{account: account, events: events, logger: logger}
}

// Upload uploads every "+" diff's file and returns one upload token per
// diff, in input order.
func (u *Uploader) Upload(additions []EnrichedDiff) ([]string, error) {
	if len(additions) == 0 {
		return nil, nil
	}

	u.events.StartedUploading(len(additions))

	tokens := make([]string, 0, len(additions))
	for _, diff := range additions {
		token, err := u.account.UploadPhotoInChunks(diff.AbsPath, diff.FileName)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", diff.AbsPath, err)
		}
		tokens = append(tokens, token)

		u.events.UploadedPhoto(diff.AbsPath)
		u.logger.Debug("uploaded photo", "path", diff.AbsPath)
	}

	u.events.FinishedUploading()
	return tokens, nil
}
