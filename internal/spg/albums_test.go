package spg_test

import (
	"errors"
	"testing"

	"spg-go/internal/spg"
	"spg-go/internal/testutil"
)

func TestAlbumIndex(t *testing.T) {
	quota := spg.StorageQuota{Limit: 1000}

	t.Run("Setup indexes shared albums across the whole pool", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		first := testutil.NewFakeAccount(lib, "first", quota)
		second := testutil.NewFakeAccount(lib, "second", quota)
		lib.SeedAlbum(first, "Pets", true)
		lib.SeedAlbum(second, "Trips", true)
		lib.SeedAlbum(second, "Private", false)

		index := spg.NewAlbumIndex([]spg.Account{first, second}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pets, err := index.GetByTitle("Pets")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pets.AccountIndex != 0 {
			t.Errorf("expected Pets on account 0, got %d", pets.AccountIndex)
		}

		trips, err := index.GetByTitle("Trips")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if trips.AccountIndex != 1 {
			t.Errorf("expected Trips on account 1, got %d", trips.AccountIndex)
		}

		if index.ContainsTitle("Private") {
			t.Error("unshared albums must not be indexed")
		}
	})

	t.Run("GetByTitle fails with NotFoundError for unknown titles", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)

		index := spg.NewAlbumIndex([]spg.Account{account}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := index.GetByTitle("Nope")
		var notFound *spg.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("Create creates a shared album and indexes it", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)

		index := spg.NewAlbumIndex([]spg.Account{account}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		created, err := index.Create(0, "Pets")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created.IsShared() {
			t.Error("created album must be shared")
		}
		if !lib.IsShared(created.ID) {
			t.Error("remote album must be shared")
		}
		if !index.ContainsTitle("Pets") {
			t.Error("created album must be indexed")
		}
	})

	t.Run("Create fails when any account already hosts the title", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		first := testutil.NewFakeAccount(lib, "first", quota)
		second := testutil.NewFakeAccount(lib, "second", quota)
		lib.SeedAlbum(first, "Pets", true)

		index := spg.NewAlbumIndex([]spg.Account{first, second}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := index.Create(1, "Pets")
		var exists *spg.AlreadyExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("expected AlreadyExistsError, got %v", err)
		}
		if second.CallCount("CreateAlbum") != 0 {
			t.Error("no remote album must be created on a title collision")
		}
	})

	t.Run("Rename re-indexes under the new title", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)
		albumID := lib.SeedAlbum(account, "Pets", true)

		index := spg.NewAlbumIndex([]spg.Account{account}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		renamed, err := index.Rename(albumID, "To delete/Pets")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if renamed.Title != "To delete/Pets" {
			t.Errorf("unexpected title %q", renamed.Title)
		}
		if index.ContainsTitle("Pets") {
			t.Error("old title must be dropped from the index")
		}
		if !index.ContainsTitle("To delete/Pets") {
			t.Error("new title must be indexed")
		}
		if lib.AlbumTitle(albumID) != "To delete/Pets" {
			t.Error("remote album must carry the new title")
		}
	})

	t.Run("Rename fails for unknown ids", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)

		index := spg.NewAlbumIndex([]spg.Account{account}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := index.Rename("no-such-id", "New")
		var notFound *spg.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("Rename fails when the new title is taken", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)
		albumID := lib.SeedAlbum(account, "Pets", true)
		lib.SeedAlbum(account, "Trips", true)

		index := spg.NewAlbumIndex([]spg.Account{account}, spg.NewNopLogger())
		if err := index.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := index.Rename(albumID, "Trips")
		var exists *spg.AlreadyExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("expected AlreadyExistsError, got %v", err)
		}
		if lib.AlbumTitle(albumID) != "Pets" {
			t.Error("remote album must keep its title on a collision")
		}
	})
}
