package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRunHandler(t *testing.T) {
	t.Run("formats records as tab-separated fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(&runHandler{w: &buf, runID: "run-1"})

		logger.Info("uploaded photo", "path", "/backup/Pets/dog.jpg", "count", 3)

		line := strings.TrimRight(buf.String(), "\n")
		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			t.Fatalf("expected 6 fields, got %d: %q", len(fields), line)
		}
		if fields[1] != "INFO" || fields[2] != "run-1" || fields[3] != "uploaded photo" {
			t.Errorf("unexpected fields: %q", line)
		}
		if fields[4] != "path=/backup/Pets/dog.jpg" || fields[5] != "count=3" {
			t.Errorf("unexpected attrs: %q", line)
		}
	})

	t.Run("WithAttrs attrs come before record attrs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(&runHandler{w: &buf, runID: "run-1"}).With("account", "first")

		logger.Warn("retrying", "status", 503)

		line := strings.TrimRight(buf.String(), "\n")
		fields := strings.Split(line, "\t")
		if fields[4] != "account=first" || fields[5] != "status=503" {
			t.Errorf("unexpected attrs: %q", line)
		}
	})
}
