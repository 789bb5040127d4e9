package tagging_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pagemark/internal/bookmarks"
	"pagemark/internal/queue"
	"pagemark/internal/services"
	"pagemark/internal/tagging"
)

type fakeCompleter struct {
	configured bool
	response   string
	err        error
	calls      int
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeCompleter) Configured() bool {
	return f.configured
}

func openStores(t *testing.T) (*bookmarks.Store, *queue.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := bookmarks.OpenPath(filepath.Join(dir, "pagemark.db"))
	if err != nil {
		t.Fatalf("open bookmarks store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	jobs, err := queue.OpenPath(filepath.Join(dir, "queue.db"))
	if err != nil {
		t.Fatalf("open queue store: %v", err)
	}
	t.Cleanup(func() { jobs.Close() })
	return store, jobs
}

func TestStageProcessSuccess(t *testing.T) {
	store, jobs := openStores(t)
	ctx := context.Background()

	bookmark, err := store.NewLink(ctx, bookmarks.NewLinkParams{
		OwnerID:     "owner-1",
		URL:         "https://example.com/rust",
		Description: "A great article about rust programming",
	})
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}

	client := &fakeCompleter{
		configured: true,
		response:   `{"tags":["rust","programming","#systems"]}`,
	}
	stage := tagging.NewStage(store, jobs, client, nil)
	job := &queue.Job{ID: 1, Kind: queue.KindTagging, BookmarkID: bookmark.ID}

	if err := stage.Process(ctx, job); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("provider calls = %d", client.calls)
	}

	tags, err := store.TagsForBookmark(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("TagsForBookmark: %v", err)
	}
	names := make(map[string]bool, len(tags))
	for _, tag := range tags {
		names[tag.Name] = true
	}
	if len(tags) != 3 || !names["rust"] || !names["programming"] || !names["systems"] {
		t.Fatalf("tags = %v", names)
	}

	attachments, err := store.Attachments(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("Attachments: %v", err)
	}
	for _, attachment := range attachments {
		if attachment.AttachedBy != bookmarks.AttachedByAI {
			t.Fatalf("attached_by = %q", attachment.AttachedBy)
		}
	}

	indexJob, err := jobs.Claim(ctx, queue.KindIndex)
	if err != nil {
		t.Fatalf("Claim index job: %v", err)
	}
	if indexJob == nil || indexJob.BookmarkID != bookmark.ID {
		t.Fatalf("index job = %+v", indexJob)
	}
	if extra, err := jobs.Claim(ctx, queue.KindIndex); err != nil || extra != nil {
		t.Fatalf("expected exactly one index job, got %+v (err=%v)", extra, err)
	}
}

func TestStageProcessIsIdempotent(t *testing.T) {
	store, jobs := openStores(t)
	ctx := context.Background()

	bookmark, err := store.NewText(ctx, bookmarks.NewTextParams{OwnerID: "owner-1", Text: "notes on sqlite tuning"})
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}

	client := &fakeCompleter{configured: true, response: `{"tags":["sqlite","databases","performance"]}`}
	stage := tagging.NewStage(store, jobs, client, nil)
	job := &queue.Job{ID: 1, Kind: queue.KindTagging, BookmarkID: bookmark.ID}

	if err := stage.Process(ctx, job); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if err := stage.Process(ctx, job); err != nil {
		t.Fatalf("second Process: %v", err)
	}

	tags, err := store.TagsForBookmark(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("TagsForBookmark: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("tags = %d, want 3 after replayed job", len(tags))
	}
}

func TestStageProcessUnconfiguredProviderSkips(t *testing.T) {
	store, jobs := openStores(t)
	ctx := context.Background()

	bookmark, err := store.NewLink(ctx, bookmarks.NewLinkParams{OwnerID: "owner-1", URL: "https://example.com", Description: "something"})
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}

	client := &fakeCompleter{configured: false}
	stage := tagging.NewStage(store, jobs, client, nil)

	if err := stage.Process(ctx, &queue.Job{ID: 1, BookmarkID: bookmark.ID}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("provider calls = %d, want 0", client.calls)
	}
	tags, err := store.TagsForBookmark(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("TagsForBookmark: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("tags = %d, want 0", len(tags))
	}
	if indexJob, err := jobs.Claim(ctx, queue.KindIndex); err != nil || indexJob != nil {
		t.Fatalf("no index job expected, got %+v (err=%v)", indexJob, err)
	}
}

func TestStageProcessMissingBookmarkFails(t *testing.T) {
	store, jobs := openStores(t)
	stage := tagging.NewStage(store, jobs, &fakeCompleter{configured: true}, nil)

	err := stage.Process(context.Background(), &queue.Job{ID: 1, BookmarkID: "no-such-id"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	if !services.IsTerminal(err) {
		t.Fatal("missing bookmark should be terminal")
	}
}

func TestStageProcessEmptyPayloadFails(t *testing.T) {
	store, jobs := openStores(t)
	stage := tagging.NewStage(store, jobs, &fakeCompleter{configured: true}, nil)

	err := stage.Process(context.Background(), &queue.Job{ID: 1})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestStageProcessMissingContentFailsBeforeProviderCall(t *testing.T) {
	store, jobs := openStores(t)
	ctx := context.Background()

	bookmark, err := store.NewLink(ctx, bookmarks.NewLinkParams{OwnerID: "owner-1", URL: "https://example.com"})
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}

	client := &fakeCompleter{configured: true}
	stage := tagging.NewStage(store, jobs, client, nil)

	err = stage.Process(ctx, &queue.Job{ID: 1, BookmarkID: bookmark.ID})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
	if client.calls != 0 {
		t.Fatalf("provider calls = %d, want 0", client.calls)
	}
}

func TestStageProcessMalformedResponseFails(t *testing.T) {
	store, jobs := openStores(t)
	ctx := context.Background()

	bookmark, err := store.NewText(ctx, bookmarks.NewTextParams{OwnerID: "owner-1", Text: "some notes"})
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}

	client := &fakeCompleter{configured: true, response: `{"labels":["not","tags"]}`}
	stage := tagging.NewStage(store, jobs, client, nil)

	err = stage.Process(ctx, &queue.Job{ID: 1, BookmarkID: bookmark.ID})
	if !errors.Is(err, services.ErrProvider) {
		t.Fatalf("error = %v, want provider", err)
	}
	tags, err := store.TagsForBookmark(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("TagsForBookmark: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("tags = %d, want 0", len(tags))
	}
	if indexJob, err := jobs.Claim(ctx, queue.KindIndex); err != nil || indexJob != nil {
		t.Fatalf("no index job expected, got %+v (err=%v)", indexJob, err)
	}
}
