package search

import (
	"context"
	"log/slog"
	"strings"

	"pagemark/internal/bookmarks"
	"pagemark/internal/logging"
	"pagemark/internal/queue"
	"pagemark/internal/services"
)

// Stage consumes index jobs: it reloads the bookmark with its attached tags
// and upserts the corresponding document, or removes it when the bookmark is
// gone.
type Stage struct {
	store  *bookmarks.Store
	index  *Index
	logger *slog.Logger
}

// NewStage constructs the indexing stage handler.
func NewStage(store *bookmarks.Store, index *Index, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{
		store:  store,
		index:  index,
		logger: logging.NewComponentLogger(logger, "search"),
	}
}

// Kind reports the queue kind this stage consumes.
func (s *Stage) Kind() queue.Kind {
	return queue.KindIndex
}

// Process refreshes the index entry for one bookmark.
func (s *Stage) Process(ctx context.Context, job *queue.Job) error {
	if job == nil || strings.TrimSpace(job.BookmarkID) == "" {
		return services.Wrap(services.ErrValidation, "search", "process", "job payload missing bookmark id", nil)
	}
	ctx = services.WithBookmarkID(ctx, job.BookmarkID)

	bookmark, err := s.store.GetByID(ctx, job.BookmarkID)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "search", "process", "load bookmark", err)
	}
	if bookmark == nil {
		if err := s.index.Delete(job.BookmarkID); err != nil {
			return services.Wrap(services.ErrPersistence, "search", "process", "remove document", err)
		}
		s.logger.InfoContext(ctx, "removed deleted bookmark from index", logging.String(logging.FieldBookmarkID, job.BookmarkID))
		return nil
	}

	tags, err := s.store.TagsForBookmark(ctx, bookmark.ID)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "search", "process", "load tags", err)
	}
	if err := s.index.Upsert(NewDocument(bookmark, tags)); err != nil {
		return services.Wrap(services.ErrPersistence, "search", "process", "index document", err)
	}
	return nil
}
