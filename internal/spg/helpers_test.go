package spg_test

import (
	"spg-go/internal/spg"
)

func sizePtr(v int64) *int64 { return &v }

func add(path string, size int64) spg.Diff {
	return spg.Diff{Modifier: spg.ModifierAdd, Path: path, FileSizeInBytes: sizePtr(size)}
}

func remove(path string) spg.Diff {
	return spg.Diff{Modifier: spg.ModifierRemove, Path: path}
}
