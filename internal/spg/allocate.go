package spg

import "fmt"

// Assignment is the allocator's decision for one album title: which account
// hosts it and its album handle. For albums created by the allocator,
// IsNewAlbum is true and Album carries the freshly materialized handle.
type Assignment struct {
	Album        RemoteAlbum
	AccountIndex int
	IsNewAlbum   bool
}

// Allocator assigns every album in a grouping to exactly one account, under
// per-account capacity constraints, and materializes albums that do not
// exist yet. It fully owns the remaining-capacity counters for the duration
// of one Allocate call: capacity is read once up front and only decremented
// in memory, never re-queried mid-pass.
type Allocator struct {
	accounts []Account
	albums   *AlbumIndex
	logger   Logger
}

// NewAllocator creates an allocator over the account pool and a set-up
// album index.
func NewAllocator(accounts []Account, albums *AlbumIndex, logger Logger) *Allocator {
	return &Allocator{accounts: accounts, albums: albums, logger: logger}
}

// Allocate decides an owning account for every album title in the grouping.
//
// Existing albums claim their current account's capacity first; new albums
// are then placed greedily on the account with the most remaining capacity.
// Only after every capacity decision succeeds are missing albums actually
// created remotely, so an allocation failure never leaves partially created
// albums behind.
func (a *Allocator) Allocate(grouped *GroupedDiffs) (map[string]Assignment, error) {
	remaining, err := a.remainingCapacity()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("capacity before allocation", "remaining", remaining)

	assignments := make(map[string]Assignment)

	// Pass 1: albums that already exist get priority claim on their current
	// account, before any space is earmarked for new albums.
	for _, title := range grouped.Titles() {
		if !a.albums.ContainsTitle(title) {
			continue
		}

		album, err := a.albums.GetByTitle(title)
		if err != nil {
			return nil, err
		}

		needed := spaceNeeded(grouped.Get(title).Additions)
		if remaining[album.AccountIndex]-needed <= 0 {
			return nil, &InsufficientSpaceError{
				AccountIndex: album.AccountIndex,
				AlbumID:      album.ID,
				AlbumTitle:   title,
			}
		}

		remaining[album.AccountIndex] -= needed
		assignments[title] = Assignment{Album: album, AccountIndex: album.AccountIndex}
	}

	// Pass 2: place new albums. Album handles stay empty until pass 3.
	for _, title := range grouped.Titles() {
		if a.albums.ContainsTitle(title) {
			continue
		}

		needed := spaceNeeded(grouped.Get(title).Additions)
		accountIndex, ok := bestAccountForNewAlbum(remaining, needed)
		if !ok {
			return nil, &NoCapacityError{AlbumTitle: title, SpaceNeeded: needed}
		}

		remaining[accountIndex] -= needed
		assignments[title] = Assignment{AccountIndex: accountIndex, IsNewAlbum: true}
	}

	a.logger.Debug("capacity after allocation", "remaining", remaining)

	// Pass 3: materialize. Every capacity decision is final at this point,
	// so a create failure cannot follow a not-yet-detected allocation error.
	for _, title := range grouped.Titles() {
		assignment := assignments[title]
		if !assignment.IsNewAlbum {
			continue
		}

		album, err := a.albums.Create(assignment.AccountIndex, title)
		if err != nil {
			return nil, err
		}
		assignment.Album = album
		assignments[title] = assignment
	}

	return assignments, nil
}

// remainingCapacity reads each account's quota once and derives its free
// space. The read is deliberately not repeated mid-pass; a stale quota is an
// accepted trade-off of the sequential design.
func (a *Allocator) remainingCapacity() ([]int64, error) {
	remaining := make([]int64, len(a.accounts))
	for i, account := range a.accounts {
		quota, err := account.GetStorageQuota()
		if err != nil {
			return nil, fmt.Errorf("reading storage quota of account %d: %w", i, err)
		}
		remaining[i] = quota.Limit - quota.Usage
	}
	return remaining, nil
}

// bestAccountForNewAlbum picks the account with the most remaining capacity
// among those that can fit the album and still have space at all. Ties go to
// the lowest account index, which keeps placement deterministic.
func bestAccountForNewAlbum(remaining []int64, needed int64) (int, bool) {
	best := -1
	var bestRemaining int64

	for i, space := range remaining {
		if needed > space || space <= 0 {
			continue
		}
		if best == -1 || space > bestRemaining {
			best = i
			bestRemaining = space
		}
	}

	if best == -1 {
		return 0, false
	}
	return best, true
}

func spaceNeeded(additions []EnrichedDiff) int64 {
	var total int64
	for _, diff := range additions {
		total += diff.FileSizeInBytes
	}
	return total
}
