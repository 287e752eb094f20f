package spg

import "fmt"

// NotFoundError indicates that an album, media item or local file was
// expected to exist but did not.
type NotFoundError struct {
	Resource string // "album", "media item", "file", ...
	Key      string // title, id or path that was looked up
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// AlreadyExistsError indicates that a create or rename collided with an
// existing album title. Titles are unique across the whole account pool.
type AlreadyExistsError struct {
	Resource string
	Key      string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Key)
}

// InsufficientSpaceError is returned when an existing album's account has no
// room left for the album's new additions. The album has to be moved to
// another account by hand; the allocator never migrates albums on its own.
type InsufficientSpaceError struct {
	AccountIndex int
	AlbumID      string
	AlbumTitle   string
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("not enough space on account %d: album %q must be moved out", e.AccountIndex, e.AlbumTitle)
}

// NoCapacityError is returned when no account in the pool can host a new
// album of the required size.
type NoCapacityError struct {
	AlbumTitle  string
	SpaceNeeded int64
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("no account has %d units of space for new album %q", e.SpaceNeeded, e.AlbumTitle)
}
