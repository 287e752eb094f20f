package spg

// AlbumDiffs is the per-album slice of one grouping: the additions and
// removals targeting a single album title, each in input order.
type AlbumDiffs struct {
	Additions []EnrichedDiff
	Removals  []EnrichedDiff
}

// Len returns the total number of diffs in the group.
func (d *AlbumDiffs) Len() int {
	return len(d.Additions) + len(d.Removals)
}

// GroupedDiffs is a set of enriched diffs grouped by album title. Titles
// iterate in first-seen order, which Go maps would not preserve on their own.
type GroupedDiffs struct {
	titles  []string
	byTitle map[string]*AlbumDiffs
}

// GroupDiffs groups enriched diffs by album title and modifier in a single
// pass. Relative order within each bucket matches the input; empty input
// yields an empty grouping.
func GroupDiffs(diffs []EnrichedDiff) *GroupedDiffs {
	grouped := &GroupedDiffs{byTitle: make(map[string]*AlbumDiffs)}

	for _, diff := range diffs {
		group, ok := grouped.byTitle[diff.AlbumTitle]
		if !ok {
			group = &AlbumDiffs{}
			grouped.byTitle[diff.AlbumTitle] = group
			grouped.titles = append(grouped.titles, diff.AlbumTitle)
		}

		if diff.Modifier == ModifierAdd {
			group.Additions = append(group.Additions, diff)
		} else {
			group.Removals = append(group.Removals, diff)
		}
	}

	return grouped
}

// Titles returns the album titles in first-seen order.
func (g *GroupedDiffs) Titles() []string {
	return g.titles
}

// Get returns the diffs grouped under a title, or nil if the title is absent.
func (g *GroupedDiffs) Get(title string) *AlbumDiffs {
	return g.byTitle[title]
}

// Len returns the total number of diffs across all groups.
func (g *GroupedDiffs) Len() int {
	total := 0
	for _, group := range g.byTitle {
		total += group.Len()
	}
	return total
}
