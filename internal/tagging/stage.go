package tagging

import (
	"context"
	"log/slog"
	"strings"

	"pagemark/internal/bookmarks"
	"pagemark/internal/logging"
	"pagemark/internal/queue"
	"pagemark/internal/services"
)

// Stage runs the enrichment pipeline for a single tagging job: load the
// bookmark, build the prompt, infer tags, persist and attach them, then emit
// an index job. All writes are idempotent so a retried job converges.
type Stage struct {
	store  *bookmarks.Store
	jobs   *queue.Store
	client Completer
	logger *slog.Logger
}

// NewStage constructs the tagging stage handler.
func NewStage(store *bookmarks.Store, jobs *queue.Store, client Completer, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{
		store:  store,
		jobs:   jobs,
		client: client,
		logger: logging.NewComponentLogger(logger, "tagging"),
	}
}

// Kind reports the queue kind this stage consumes.
func (s *Stage) Kind() queue.Kind {
	return queue.KindTagging
}

// Process executes the pipeline for one job.
func (s *Stage) Process(ctx context.Context, job *queue.Job) error {
	if job == nil || strings.TrimSpace(job.BookmarkID) == "" {
		return services.Wrap(services.ErrValidation, "tagging", "process", "job payload missing bookmark id", nil)
	}
	ctx = services.WithBookmarkID(ctx, job.BookmarkID)
	logger := s.logger.With(logging.String(logging.FieldBookmarkID, job.BookmarkID), logging.Int64(logging.FieldJobID, job.ID))

	bookmark, err := s.store.GetByID(ctx, job.BookmarkID)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "tagging", "process", "load bookmark", err)
	}
	if bookmark == nil {
		return services.Wrap(services.ErrNotFound, "tagging", "process", "bookmark no longer exists", nil)
	}

	if !s.client.Configured() {
		logger.InfoContext(ctx, "provider not configured, skipping inference")
		return nil
	}

	prompt, err := BuildPrompt(bookmark)
	if err != nil {
		return err
	}

	names, err := InferTags(ctx, s.client, prompt)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "inferred tags", logging.Int("count", len(names)))

	tags, err := s.store.EnsureTags(ctx, bookmark.OwnerID, names)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "tagging", "process", "ensure tags", err)
	}
	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	if err := s.store.AttachTags(ctx, bookmark.ID, ids, bookmarks.AttachedByAI); err != nil {
		return services.Wrap(services.ErrPersistence, "tagging", "process", "attach tags", err)
	}

	if _, err := s.jobs.Enqueue(ctx, queue.KindIndex, bookmark.ID); err != nil {
		return services.Wrap(services.ErrPersistence, "tagging", "process", "enqueue index job", err)
	}
	return nil
}
