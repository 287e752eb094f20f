package spg

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Diff modifiers. A "+" diff adds a file to its album, a "-" diff removes it.
const (
	ModifierAdd    = "+"
	ModifierRemove = "-"
)

// Diff is one filesystem change driving a backup pass. Path is relative to
// the working root. The remaining fields are optional overrides: when set
// they are used verbatim and enrichment skips the corresponding derivation.
type Diff struct {
	Modifier        string
	Path            string
	AlbumTitle      string // override; derived from Path when empty
	FileName        string // override; derived from Path when empty
	FileSizeInBytes *int64 // override; stat'ed from disk when nil
}

// EnrichedDiff is a Diff with all derived metadata filled in. It is never
// mutated after Enrich returns it. AlbumTitle and FileName are always
// non-empty.
type EnrichedDiff struct {
	Modifier        string
	AlbumTitle      string
	FileName        string
	AbsPath         string
	FileSizeInBytes int64
}

// Enrich derives the metadata for each diff, preserving order and producing
// exactly one output per input. Diffs carrying explicit overrides never touch
// the filesystem; deletions never need a size. A "+" diff whose file cannot
// be stat'ed fails with a *NotFoundError.
func Enrich(fsmgr FilesystemManager, diffs []Diff) ([]EnrichedDiff, error) {
	enriched := make([]EnrichedDiff, 0, len(diffs))

	for _, diff := range diffs {
		if diff.Modifier != ModifierAdd && diff.Modifier != ModifierRemove {
			return nil, fmt.Errorf("invalid modifier %q for path %q", diff.Modifier, diff.Path)
		}

		absPath, err := fsmgr.Abs(diff.Path)
		if err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", diff.Path, err)
		}

		title, err := albumTitleForDiff(diff)
		if err != nil {
			return nil, err
		}

		fileName := diff.FileName
		if fileName == "" {
			fileName = filepath.Base(absPath)
		}
		if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
			return nil, fmt.Errorf("cannot derive file name from path %q", diff.Path)
		}

		size, err := fileSizeForDiff(fsmgr, diff, absPath)
		if err != nil {
			return nil, err
		}

		enriched = append(enriched, EnrichedDiff{
			Modifier:        diff.Modifier,
			AlbumTitle:      title,
			FileName:        fileName,
			AbsPath:         absPath,
			FileSizeInBytes: size,
		})
	}

	return enriched, nil
}

// albumTitleForDiff returns the explicit album title if one was given, else
// derives it from the diff's directory: dirname(path), trimmed to start at
// the first alphabetic rune. The trim tolerates leading "./" and stray path
// separators in hand-written diff files.
func albumTitleForDiff(diff Diff) (string, error) {
	if diff.AlbumTitle != "" {
		return diff.AlbumTitle, nil
	}

	title := filepath.Dir(diff.Path)
	start := strings.IndexFunc(title, unicode.IsLetter)
	if start < 0 {
		return "", fmt.Errorf("cannot derive album title from path %q", diff.Path)
	}

	return title[start:], nil
}

func fileSizeForDiff(fsmgr FilesystemManager, diff Diff, absPath string) (int64, error) {
	// Deletions need no size: they never consume capacity.
	if diff.Modifier == ModifierRemove {
		return 0, nil
	}

	if diff.FileSizeInBytes != nil {
		return *diff.FileSizeInBytes, nil
	}

	size, err := fsmgr.FileSize(absPath)
	if err != nil {
		return 0, err
	}
	return size, nil
}
