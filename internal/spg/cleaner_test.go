package spg_test

import (
	"fmt"
	"testing"

	"spg-go/internal/spg"
	"spg-go/internal/testutil"
)

func TestCleaner(t *testing.T) {
	quota := spg.StorageQuota{Limit: 1000}

	t.Run("moves unalbumed items into a fresh trash album", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)
		albumID := lib.SeedAlbum(account, "Pets", true)
		lib.SeedMediaItem(account, albumID, "albumed.jpg")
		lib.SeedMediaItem(account, "", "stray-1.jpg")
		lib.SeedMediaItem(account, "", "stray-2.jpg")

		events := testutil.NewEventRecorder()
		cleaner := spg.NewCleaner(account, events, spg.NewNopLogger())

		moved, err := cleaner.MarkUnalbumedPhotosForTrash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if moved != 2 {
			t.Errorf("expected 2 items moved, got %d", moved)
		}

		trash, ok := lib.FindAlbumByTitle("Trash")
		if !ok {
			t.Fatal("expected a trash album to exist")
		}
		got := lib.FileNamesInAlbum(trash.ID)
		if len(got) != 2 || got[0] != "stray-1.jpg" || got[1] != "stray-2.jpg" {
			t.Errorf("unexpected trash contents: %v", got)
		}

		if events.Events[0] != "created_trash_album:"+trash.ID {
			t.Errorf("unexpected events: %v", events.Events)
		}
	})

	t.Run("reuses an existing trash album", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)
		trashID := lib.SeedAlbum(account, "Trash", false)
		lib.SeedMediaItem(account, "", "stray.jpg")

		events := testutil.NewEventRecorder()
		cleaner := spg.NewCleaner(account, events, spg.NewNopLogger())

		moved, err := cleaner.MarkUnalbumedPhotosForTrash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if moved != 1 {
			t.Errorf("expected 1 item moved, got %d", moved)
		}
		if events.Events[0] != "found_trash_album:"+trashID {
			t.Errorf("unexpected events: %v", events.Events)
		}
		if account.CallCount("CreateAlbum") != 0 {
			t.Error("no second trash album must be created")
		}
	})

	t.Run("items in any shared album stay untouched", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)
		albumID := lib.SeedAlbum(account, "Pets", true)
		lib.SeedMediaItem(account, albumID, "albumed.jpg")

		cleaner := spg.NewCleaner(account, testutil.NewEventRecorder(), spg.NewNopLogger())
		moved, err := cleaner.MarkUnalbumedPhotosForTrash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if moved != 0 {
			t.Errorf("expected nothing moved, got %d", moved)
		}

		trash, ok := lib.FindAlbumByTitle("Trash")
		if !ok {
			t.Fatal("expected a trash album to exist")
		}
		if got := lib.FileNamesInAlbum(trash.ID); len(got) != 0 {
			t.Errorf("expected an empty trash album, got %v", got)
		}
	})

	t.Run("moves large batches in chunks of 50", func(t *testing.T) {
		lib := testutil.NewFakeLibrary()
		account := testutil.NewFakeAccount(lib, "only", quota)
		for i := 0; i < 120; i++ {
			lib.SeedMediaItem(account, "", fmt.Sprintf("stray-%03d.jpg", i))
		}

		cleaner := spg.NewCleaner(account, spg.NewNopEvents(), spg.NewNopLogger())
		moved, err := cleaner.MarkUnalbumedPhotosForTrash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if moved != 120 {
			t.Errorf("expected 120 items moved, got %d", moved)
		}
		if calls := account.CallCount("AddPhotosToAlbum"); calls != 3 {
			t.Errorf("expected 3 batched calls for 120 items, got %d", calls)
		}
	})
}
