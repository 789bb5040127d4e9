package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagemark/internal/services"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "pagemark.log")

	logger, err := New(Options{
		Level:            "info",
		Format:           "console",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("bookmark enqueued", String(FieldBookmarkID, "bm-1"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "bookmark enqueued") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "bookmark_id=bm-1") {
		t.Fatalf("expected attr in output, got %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithJobID(context.Background(), 7)
	ctx = services.WithBookmarkID(ctx, "bm-2")
	ctx = services.WithLane(ctx, "enrichment")

	fields := ContextFields(ctx)
	keys := make(map[string]bool, len(fields))
	for _, f := range fields {
		keys[f.Key] = true
	}
	for _, want := range []string{FieldJobID, FieldBookmarkID, FieldLane} {
		if !keys[want] {
			t.Fatalf("missing context field %s in %v", want, keys)
		}
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("nonsense") != parseLevel("info") {
		t.Fatal("unknown level should default to info")
	}
}
