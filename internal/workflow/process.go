package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pagemark/internal/bookmarks"
	"pagemark/internal/logging"
	"pagemark/internal/queue"
	"pagemark/internal/services"
)

func (m *Manager) processJob(ctx context.Context, lane *laneState, job *queue.Job) error {
	requestID := uuid.NewString()
	jobCtx := services.WithRequestID(services.WithJobID(services.WithLane(ctx, lane.name), job.ID), requestID)
	logger := lane.logger.With(
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String(logging.FieldBookmarkID, job.BookmarkID),
		logging.String(logging.FieldCorrelationID, requestID),
	)

	start := time.Now()
	logger.Info("job started", logging.String(logging.FieldEventType, "job_start"))

	execErr := m.executeWithHeartbeat(jobCtx, lane.handler, job)
	if execErr != nil {
		if errors.Is(execErr, context.Canceled) {
			logger.Debug("job interrupted by shutdown")
			return execErr
		}
		m.finishFailure(jobCtx, lane, logger, job, execErr)
		m.setLastError(execErr)
		return execErr
	}

	m.finishSuccess(jobCtx, lane, logger, job)
	logger.Info("job completed",
		logging.String(logging.FieldEventType, "job_complete"),
		logging.Duration("job_duration", time.Since(start)),
	)
	return nil
}

func (m *Manager) executeWithHeartbeat(ctx context.Context, handler Handler, job *queue.Job) error {
	hbCtx, hbCancel := context.WithCancel(ctx)
	var hbWG sync.WaitGroup
	hbWG.Add(1)
	go m.heartbeat.StartLoop(hbCtx, &hbWG, job.ID)

	execErr := handler.Process(ctx, job)
	hbCancel()
	hbWG.Wait()
	return execErr
}

func (m *Manager) finishSuccess(ctx context.Context, lane *laneState, logger *slog.Logger, job *queue.Job) {
	if err := m.jobs.Complete(ctx, job.ID); err != nil {
		logger.Error("failed to mark job completed", logging.Error(err))
		m.setLastError(err)
	}
	if lane.handler.Kind() == queue.KindTagging {
		m.recordTaggingStatus(ctx, logger, job.BookmarkID, bookmarks.TaggingStatusSuccess)
	}
}

func (m *Manager) finishFailure(ctx context.Context, lane *laneState, logger *slog.Logger, job *queue.Job, execErr error) {
	message := failureMessage(execErr)
	logger.Error("job failed",
		logging.String(logging.FieldEventType, "job_failed"),
		logging.Error(execErr),
	)
	if err := m.jobs.Fail(ctx, job.ID, message); err != nil {
		logger.Error("failed to mark job failed", logging.Error(err))
		m.setLastError(err)
	}
	if lane.handler.Kind() == queue.KindTagging {
		m.recordTaggingStatus(ctx, logger, job.BookmarkID, bookmarks.TaggingStatusFailure)
		m.notifyEnrichmentFailure(ctx, logger, job, execErr)
	}
}

// recordTaggingStatus writes the terminal tagging status for a bookmark. A
// write failure is logged and swallowed so the job's own outcome stands.
func (m *Manager) recordTaggingStatus(ctx context.Context, logger *slog.Logger, bookmarkID string, status bookmarks.TaggingStatus) {
	if strings.TrimSpace(bookmarkID) == "" {
		return
	}
	found, err := m.bookmarks.SetTaggingStatus(ctx, bookmarkID, status)
	if err != nil {
		logger.Warn("failed to record tagging status",
			logging.String("status", string(status)),
			logging.Error(err),
		)
		return
	}
	if !found {
		logger.Debug("bookmark removed before status update", logging.String("status", string(status)))
	}
}

func (m *Manager) notifyEnrichmentFailure(ctx context.Context, logger *slog.Logger, job *queue.Job, execErr error) {
	title := job.BookmarkID
	if bookmark, err := m.bookmarks.GetByID(ctx, job.BookmarkID); err == nil && bookmark != nil {
		title = bookmark.DisplayTitle()
	}
	if err := m.notifier.NotifyEnrichmentFailed(ctx, title, execErr); err != nil {
		logger.Warn("failed to send failure notification", logging.Error(err))
	}
}

// failureMessage produces the operator-facing error text stored on the job.
func failureMessage(err error) string {
	if err == nil {
		return "unknown failure"
	}
	switch {
	case errors.Is(err, services.ErrValidation):
		return "invalid job: " + err.Error()
	case errors.Is(err, services.ErrNotFound):
		return "missing record: " + err.Error()
	case errors.Is(err, services.ErrProvider):
		return "provider failure: " + err.Error()
	case errors.Is(err, services.ErrTimeout):
		return "provider timeout: " + err.Error()
	case errors.Is(err, services.ErrPersistence):
		return "storage failure: " + err.Error()
	case errors.Is(err, services.ErrConfiguration):
		return "configuration problem: " + err.Error()
	default:
		return err.Error()
	}
}
