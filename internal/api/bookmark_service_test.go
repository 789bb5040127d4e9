package api_test

import (
	"context"
	"errors"
	"testing"

	"pagemark/internal/api"
	"pagemark/internal/bookmarks"
	"pagemark/internal/queue"
	"pagemark/internal/services"
	"pagemark/internal/testsupport"
)

func newBookmarkService(t *testing.T) (*api.BookmarkService, *bookmarks.Store, *queue.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenBookmarks(t, cfg)
	jobs := testsupport.MustOpenQueue(t, cfg)
	return api.NewBookmarkService(store, jobs), store, jobs
}

func TestAddLinkEnqueuesTaggingJob(t *testing.T) {
	svc, _, jobs := newBookmarkService(t)
	ctx := context.Background()

	view, err := svc.AddLink(ctx, bookmarks.NewLinkParams{
		OwnerID: "owner-1",
		URL:     "https://example.com/article",
		Title:   "An Article",
	})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if view.TaggingStatus != string(bookmarks.TaggingStatusPending) {
		t.Fatalf("tagging status = %q", view.TaggingStatus)
	}

	job, err := jobs.Claim(ctx, queue.KindTagging)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if job == nil || job.BookmarkID != view.ID {
		t.Fatalf("job = %+v", job)
	}
}

func TestAddLinkRequiresURL(t *testing.T) {
	svc, _, _ := newBookmarkService(t)
	_, err := svc.AddLink(context.Background(), bookmarks.NewLinkParams{OwnerID: "owner-1"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestAddTextEnqueuesTaggingJob(t *testing.T) {
	svc, _, jobs := newBookmarkService(t)
	ctx := context.Background()

	view, err := svc.AddText(ctx, bookmarks.NewTextParams{OwnerID: "owner-1", Text: "remember this"})
	if err != nil {
		t.Fatalf("AddText: %v", err)
	}
	job, err := jobs.Claim(ctx, queue.KindTagging)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if job == nil || job.BookmarkID != view.ID {
		t.Fatalf("job = %+v", job)
	}
}

func TestShowIncludesTags(t *testing.T) {
	svc, store, _ := newBookmarkService(t)
	ctx := context.Background()

	view, err := svc.AddLink(ctx, bookmarks.NewLinkParams{OwnerID: "owner-1", URL: "https://example.com"})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	tags, err := store.EnsureTags(ctx, "owner-1", []string{"go", "web"})
	if err != nil {
		t.Fatalf("EnsureTags: %v", err)
	}
	if err := store.AttachTags(ctx, view.ID, []string{tags[0].ID, tags[1].ID}, bookmarks.AttachedByUser); err != nil {
		t.Fatalf("AttachTags: %v", err)
	}

	shown, err := svc.Show(ctx, view.ID)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if len(shown.Tags) != 2 {
		t.Fatalf("tags = %v", shown.Tags)
	}
}

func TestShowMissingBookmark(t *testing.T) {
	svc, _, _ := newBookmarkService(t)
	_, err := svc.Show(context.Background(), "nope")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestRemoveEnqueuesIndexCleanup(t *testing.T) {
	svc, _, jobs := newBookmarkService(t)
	ctx := context.Background()

	view, err := svc.AddLink(ctx, bookmarks.NewLinkParams{OwnerID: "owner-1", URL: "https://example.com"})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := svc.Remove(ctx, view.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	job, err := jobs.Claim(ctx, queue.KindIndex)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if job == nil || job.BookmarkID != view.ID {
		t.Fatalf("job = %+v", job)
	}

	if err := svc.Remove(ctx, view.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("second remove = %v, want not found", err)
	}
}

func TestRetagResetsStatusAndEnqueues(t *testing.T) {
	svc, store, jobs := newBookmarkService(t)
	ctx := context.Background()

	view, err := svc.AddLink(ctx, bookmarks.NewLinkParams{OwnerID: "owner-1", URL: "https://example.com"})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	// Drain the initial tagging job and simulate a finished enrichment.
	if _, err := jobs.Claim(ctx, queue.KindTagging); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if _, err := store.SetTaggingStatus(ctx, view.ID, bookmarks.TaggingStatusFailure); err != nil {
		t.Fatalf("SetTaggingStatus: %v", err)
	}

	if err := svc.Retag(ctx, view.ID); err != nil {
		t.Fatalf("Retag: %v", err)
	}
	updated, err := store.GetByID(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.TaggingStatus != bookmarks.TaggingStatusPending {
		t.Fatalf("tagging status = %q", updated.TaggingStatus)
	}
	job, err := jobs.Claim(ctx, queue.KindTagging)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if job == nil || job.BookmarkID != view.ID {
		t.Fatalf("job = %+v", job)
	}
}
