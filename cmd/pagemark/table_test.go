package main

import (
	"strings"
	"testing"

	"pagemark/internal/api"
	"pagemark/internal/search"
)

func TestQueueStatusRowsOrder(t *testing.T) {
	rows := queueStatusRows(map[string]int{
		"failed":  2,
		"pending": 5,
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].label != "Pending" || rows[0].count != 5 {
		t.Fatalf("expected Pending first, got %+v", rows[0])
	}
	if rows[1].label != "Failed" || rows[1].count != 2 {
		t.Fatalf("expected Failed second, got %+v", rows[1])
	}
}

func TestRenderBookmarkTable(t *testing.T) {
	rendered := renderBookmarkTable([]api.BookmarkView{
		{
			ID:            "0b5ec820-9d9a-44bd-9a82-2aa788d06a7b",
			Kind:          "link",
			Title:         "An Article",
			TaggingStatus: "success",
			Tags:          []string{"go", "testing"},
		},
	})
	for _, want := range []string{"0b5ec820", "Link", "An Article", "Success", "go, testing"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("table missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "0b5ec820-9d9a") {
		t.Fatalf("expected abbreviated id:\n%s", rendered)
	}
}

func TestRenderQueueJobTable(t *testing.T) {
	rendered := renderQueueJobTable([]api.QueueJob{
		{ID: 7, Kind: "tagging", BookmarkID: "bm-1", Status: "failed", Attempts: 3, ErrorMessage: "boom"},
	})
	for _, want := range []string{"7", "Tagging", "bm-1", "Failed", "boom"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("table missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderSearchHitTable(t *testing.T) {
	rendered := renderSearchHitTable([]search.Hit{
		{ID: "abcd1234efgh", Kind: "text", Title: "A Note", Tags: []string{"notes"}},
	})
	for _, want := range []string{"abcd1234", "Text", "A Note", "notes"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("table missing %q:\n%s", want, rendered)
		}
	}
}
