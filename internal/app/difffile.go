package app

import (
	"encoding/json"
	"fmt"
	"os"

	"spg-go/internal/spg"
)

// diffRecord is one entry of a diff file: a JSON array of filesystem changes
// to back up. Only modifier and path are required; the rest are overrides.
type diffRecord struct {
	Modifier        string `json:"modifier"`
	Path            string `json:"path"`
	AlbumTitle      string `json:"album_title,omitempty"`
	FileName        string `json:"file_name,omitempty"`
	FileSizeInBytes *int64 `json:"file_size_in_bytes,omitempty"`
}

// ReadDiffFile parses a JSON diff file into core diffs.
func ReadDiffFile(path string) ([]spg.Diff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diff file: %w", err)
	}

	var records []diffRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing diff file %s: %w", path, err)
	}

	diffs := make([]spg.Diff, 0, len(records))
	for i, record := range records {
		if record.Modifier != spg.ModifierAdd && record.Modifier != spg.ModifierRemove {
			return nil, fmt.Errorf("diff file %s entry %d: invalid modifier %q", path, i, record.Modifier)
		}
		if record.Path == "" {
			return nil, fmt.Errorf("diff file %s entry %d: missing path", path, i)
		}
		diffs = append(diffs, spg.Diff{
			Modifier:        record.Modifier,
			Path:            record.Path,
			AlbumTitle:      record.AlbumTitle,
			FileName:        record.FileName,
			FileSizeInBytes: record.FileSizeInBytes,
		})
	}
	return diffs, nil
}
