package api

import (
	"context"
	"strings"

	"pagemark/internal/bookmarks"
	"pagemark/internal/queue"
	"pagemark/internal/services"
)

// BookmarkService couples bookmark persistence with job emission: creating a
// bookmark schedules its enrichment, removing one schedules its index
// cleanup.
type BookmarkService struct {
	store *bookmarks.Store
	jobs  *queue.Store
}

// NewBookmarkService constructs the service around both stores.
func NewBookmarkService(store *bookmarks.Store, jobs *queue.Store) *BookmarkService {
	return &BookmarkService{store: store, jobs: jobs}
}

// AddLink saves a link bookmark and enqueues a tagging job for it.
func (s *BookmarkService) AddLink(ctx context.Context, params bookmarks.NewLinkParams) (BookmarkView, error) {
	if strings.TrimSpace(params.URL) == "" {
		return BookmarkView{}, services.Wrap(services.ErrValidation, "api", "add link", "url required", nil)
	}
	bookmark, err := s.store.NewLink(ctx, params)
	if err != nil {
		return BookmarkView{}, err
	}
	if _, err := s.jobs.Enqueue(ctx, queue.KindTagging, bookmark.ID); err != nil {
		return BookmarkView{}, services.Wrap(services.ErrPersistence, "api", "add link", "enqueue tagging job", err)
	}
	return FromBookmark(bookmark, nil), nil
}

// AddText saves a text bookmark and enqueues a tagging job for it.
func (s *BookmarkService) AddText(ctx context.Context, params bookmarks.NewTextParams) (BookmarkView, error) {
	if strings.TrimSpace(params.Text) == "" {
		return BookmarkView{}, services.Wrap(services.ErrValidation, "api", "add text", "text required", nil)
	}
	bookmark, err := s.store.NewText(ctx, params)
	if err != nil {
		return BookmarkView{}, err
	}
	if _, err := s.jobs.Enqueue(ctx, queue.KindTagging, bookmark.ID); err != nil {
		return BookmarkView{}, services.Wrap(services.ErrPersistence, "api", "add text", "enqueue tagging job", err)
	}
	return FromBookmark(bookmark, nil), nil
}

// Show returns a bookmark with its attached tags.
func (s *BookmarkService) Show(ctx context.Context, id string) (*BookmarkView, error) {
	bookmark, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return nil, services.Wrap(services.ErrNotFound, "api", "show", "bookmark "+id, nil)
	}
	tags, err := s.store.TagsForBookmark(ctx, bookmark.ID)
	if err != nil {
		return nil, err
	}
	view := FromBookmark(bookmark, tags)
	return &view, nil
}

// List returns bookmark views matching the filter.
func (s *BookmarkService) List(ctx context.Context, filter bookmarks.ListFilter) ([]BookmarkView, error) {
	items, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]BookmarkView, 0, len(items))
	for _, bookmark := range items {
		tags, err := s.store.TagsForBookmark(ctx, bookmark.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, FromBookmark(bookmark, tags))
	}
	return views, nil
}

// Remove deletes a bookmark and schedules removal of its index document.
func (s *BookmarkService) Remove(ctx context.Context, id string) error {
	found, err := s.store.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return services.Wrap(services.ErrNotFound, "api", "remove", "bookmark "+id, nil)
	}
	if _, err := s.jobs.Enqueue(ctx, queue.KindIndex, id); err != nil {
		return services.Wrap(services.ErrPersistence, "api", "remove", "enqueue index cleanup", err)
	}
	return nil
}

// Retag requeues an existing bookmark for enrichment.
func (s *BookmarkService) Retag(ctx context.Context, id string) error {
	bookmark, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return services.Wrap(services.ErrNotFound, "api", "retag", "bookmark "+id, nil)
	}
	if _, err := s.store.SetTaggingStatus(ctx, id, bookmarks.TaggingStatusPending); err != nil {
		return err
	}
	if _, err := s.jobs.Enqueue(ctx, queue.KindTagging, id); err != nil {
		return services.Wrap(services.ErrPersistence, "api", "retag", "enqueue tagging job", err)
	}
	return nil
}
