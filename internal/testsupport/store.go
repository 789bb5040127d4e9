package testsupport

import (
	"context"
	"testing"

	"pagemark/internal/bookmarks"
	"pagemark/internal/config"
	"pagemark/internal/queue"
)

// MustOpenQueue opens a queue.Store for tests and registers cleanup.
func MustOpenQueue(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenBookmarks opens a bookmarks.Store for tests and registers cleanup.
func MustOpenBookmarks(t testing.TB, cfg *config.Config) *bookmarks.Store {
	t.Helper()

	store, err := bookmarks.Open(cfg)
	if err != nil {
		t.Fatalf("bookmarks.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewLink creates a link bookmark for tests using the provided store.
func NewLink(t testing.TB, store *bookmarks.Store, ownerID, url, description string) *bookmarks.Bookmark {
	t.Helper()

	bookmark, err := store.NewLink(context.Background(), bookmarks.NewLinkParams{
		OwnerID:     ownerID,
		URL:         url,
		Description: description,
	})
	if err != nil {
		t.Fatalf("store.NewLink: %v", err)
	}
	return bookmark
}
