package spg_test

import (
	"reflect"
	"testing"

	"spg-go/internal/spg"
)

func enrichedAdd(title, fileName string, size int64) spg.EnrichedDiff {
	return spg.EnrichedDiff{
		Modifier:        spg.ModifierAdd,
		AlbumTitle:      title,
		FileName:        fileName,
		AbsPath:         "/backup/" + title + "/" + fileName,
		FileSizeInBytes: size,
	}
}

func enrichedRemove(title, fileName string) spg.EnrichedDiff {
	return spg.EnrichedDiff{
		Modifier:   spg.ModifierRemove,
		AlbumTitle: title,
		FileName:   fileName,
		AbsPath:    "/backup/" + title + "/" + fileName,
	}
}

func TestGroupDiffs(t *testing.T) {
	t.Run("splits diffs by title and modifier", func(t *testing.T) {
		grouped := spg.GroupDiffs([]spg.EnrichedDiff{
			enrichedAdd("Pets", "dog.jpg", 1),
			enrichedRemove("Pets", "cat.jpg"),
			enrichedAdd("Trips", "beach.jpg", 2),
		})

		pets := grouped.Get("Pets")
		if pets == nil {
			t.Fatal("expected a Pets group")
		}
		if len(pets.Additions) != 1 || len(pets.Removals) != 1 {
			t.Errorf("expected 1 addition and 1 removal in Pets, got %d and %d",
				len(pets.Additions), len(pets.Removals))
		}

		trips := grouped.Get("Trips")
		if trips == nil || len(trips.Additions) != 1 || len(trips.Removals) != 0 {
			t.Errorf("unexpected Trips group: %+v", trips)
		}
	})

	t.Run("every diff lands in exactly one group", func(t *testing.T) {
		diffs := []spg.EnrichedDiff{
			enrichedAdd("A", "1.jpg", 1),
			enrichedAdd("B", "2.jpg", 1),
			enrichedRemove("A", "3.jpg"),
			enrichedAdd("C", "4.jpg", 1),
			enrichedRemove("C", "5.jpg"),
		}

		grouped := spg.GroupDiffs(diffs)
		if grouped.Len() != len(diffs) {
			t.Errorf("expected %d diffs across groups, got %d", len(diffs), grouped.Len())
		}
	})

	t.Run("titles iterate in first-seen order", func(t *testing.T) {
		grouped := spg.GroupDiffs([]spg.EnrichedDiff{
			enrichedAdd("Zoo", "1.jpg", 1),
			enrichedAdd("Alps", "2.jpg", 1),
			enrichedAdd("Zoo", "3.jpg", 1),
			enrichedAdd("Mid", "4.jpg", 1),
		})

		want := []string{"Zoo", "Alps", "Mid"}
		if !reflect.DeepEqual(grouped.Titles(), want) {
			t.Errorf("expected titles %v, got %v", want, grouped.Titles())
		}
	})

	t.Run("order within a group matches the input", func(t *testing.T) {
		grouped := spg.GroupDiffs([]spg.EnrichedDiff{
			enrichedAdd("Pets", "first.jpg", 1),
			enrichedAdd("Trips", "other.jpg", 1),
			enrichedAdd("Pets", "second.jpg", 1),
		})

		additions := grouped.Get("Pets").Additions
		if additions[0].FileName != "first.jpg" || additions[1].FileName != "second.jpg" {
			t.Errorf("unexpected addition order: %+v", additions)
		}
	})

	t.Run("empty input yields an empty grouping", func(t *testing.T) {
		grouped := spg.GroupDiffs(nil)
		if grouped.Len() != 0 || len(grouped.Titles()) != 0 {
			t.Errorf("expected empty grouping, got %d diffs in %v", grouped.Len(), grouped.Titles())
		}
	})
}
