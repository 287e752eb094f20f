package spg

import "fmt"

// retiredAlbumPrefix marks an emptied album for manual deletion. The system
// never deletes albums itself; renaming and unsharing is the terminal state.
const retiredAlbumPrefix = "To delete/"

// BackupResult is what a successful run reports back to the caller.
type BackupResult struct {
	// NewAlbums lists the albums the run created, with their share info,
	// in the order their titles first appeared in the diff stream.
	NewAlbums []RemoteAlbum
}

// BackupService backs up a stream of diffs into the account pool. One Backup
// call is one fully sequential run: enrich, group, index, allocate, then
// reconcile each album. Completed stages are never rolled back; a failure
// aborts the run and leaves already-applied remote mutations standing, which
// is safe to resume because deletions are idempotent and state is re-read
// from the remote at the start of every run.
type BackupService struct {
	accounts []Account
	fsmgr    FilesystemManager
	logger   Logger
	events   Events
}

// NewBackupService creates a backup service over the given account pool.
func NewBackupService(accounts []Account, fsmgr FilesystemManager, logger Logger, events Events) *BackupService {
	return &BackupService{
		accounts: accounts,
		fsmgr:    fsmgr,
		logger:   logger,
		events:   events,
	}
}

// Backup runs one backup pass over the given diffs.
//
// Allocation happens entirely before any per-album mutation, so an
// *InsufficientSpaceError or *NoCapacityError aborts the run without any
// remote side effect.
func (s *BackupService) Backup(diffs []Diff) (*BackupResult, error) {
	enriched, err := Enrich(s.fsmgr, diffs)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("enriched diffs", "count", len(enriched))

	grouped := GroupDiffs(enriched)
	s.logger.Debug("grouped diffs", "albums", len(grouped.Titles()))

	albums := NewAlbumIndex(s.accounts, s.logger)
	if err := albums.Setup(); err != nil {
		return nil, err
	}

	allocator := NewAllocator(s.accounts, albums, s.logger)
	assignments, err := allocator.Allocate(grouped)
	if err != nil {
		return nil, err
	}
	for _, title := range grouped.Titles() {
		s.logger.Debug("assigned album", "title", title, "account", assignments[title].AccountIndex)
	}

	for _, title := range grouped.Titles() {
		if err := s.reconcileAlbum(albums, assignments[title], grouped.Get(title)); err != nil {
			return nil, err
		}
	}

	result := &BackupResult{}
	for _, title := range grouped.Titles() {
		if assignments[title].IsNewAlbum {
			result.NewAlbums = append(result.NewAlbums, assignments[title].Album)
		}
	}
	return result, nil
}

// reconcileAlbum brings one album's remote membership in line with its
// diffs: removals first, then additions, then retirement if it ended up
// empty.
func (s *BackupService) reconcileAlbum(albums *AlbumIndex, assignment Assignment, albumDiffs *AlbumDiffs) error {
	album := assignment.Album
	account := s.accounts[assignment.AccountIndex]

	media := NewMediaIndex(album.ID, assignment.AccountIndex, account, s.logger)
	if err := media.Setup(); err != nil {
		return err
	}

	if err := s.removeDeleted(media, albumDiffs.Removals); err != nil {
		return err
	}

	uploader := NewUploader(account, s.events, s.logger)
	tokens, err := uploader.Upload(albumDiffs.Additions)
	if err != nil {
		return err
	}
	if err := media.AddFromUploadTokens(tokens); err != nil {
		return err
	}

	if media.Count() == 0 {
		if err := s.retireAlbum(albums, album); err != nil {
			return err
		}
	}

	return nil
}

// removeDeleted removes every "-" diff's file from the album. Diffs naming
// files the album does not contain are skipped: a re-run of an already
// applied delete is not an error.
func (s *BackupService) removeDeleted(media *MediaIndex, removals []EnrichedDiff) error {
	var ids []string
	var fileNames []string
	seen := make(map[string]bool)

	for _, diff := range removals {
		if !media.ContainsFileName(diff.FileName) {
			s.logger.Debug("skipping delete of absent file", "file", diff.FileName)
			continue
		}
		item, err := media.GetByFileName(diff.FileName)
		if err != nil {
			return err
		}
		if !seen[item.ID] {
			seen[item.ID] = true
			ids = append(ids, item.ID)
			fileNames = append(fileNames, item.FileName)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	s.events.StartedDeleting(len(ids))
	if err := media.Remove(ids); err != nil {
		return err
	}
	for _, fileName := range fileNames {
		s.events.DeletedPhoto(fileName)
	}
	s.events.FinishedDeleting()

	return nil
}

// retireAlbum renames an emptied album under the to-delete prefix and
// unshares it, signaling a human to delete it by hand.
func (s *BackupService) retireAlbum(albums *AlbumIndex, album RemoteAlbum) error {
	renamed, err := albums.Rename(album.ID, retiredAlbumPrefix+album.Title)
	if err != nil {
		return err
	}

	if err := s.accounts[renamed.AccountIndex].UnshareAlbum(renamed.ID); err != nil {
		return fmt.Errorf("unsharing retired album %q: %w", renamed.Title, err)
	}

	s.logger.Info("retired empty album", "title", album.Title)
	return nil
}
