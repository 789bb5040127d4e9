package api

import (
	"context"

	"pagemark/internal/queue"
)

// QueueReader abstracts queue persistence interactions needed for API queries.
type QueueReader interface {
	List(ctx context.Context, statuses ...queue.Status) ([]*queue.Job, error)
	Stats(ctx context.Context) (map[queue.Status]int, error)
	Health(ctx context.Context) (queue.HealthSummary, error)
	GetByID(ctx context.Context, id int64) (*queue.Job, error)
}

// QueueActions abstracts the mutating queue operations the CLI exposes.
type QueueActions interface {
	RetryFailed(ctx context.Context, ids ...int64) (int64, error)
	ClearCompleted(ctx context.Context) (int64, error)
	ClearFailed(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

// QueueService exposes queue operations returning API DTOs.
type QueueService struct {
	reader  QueueReader
	actions QueueActions
}

// NewQueueService constructs a QueueService around the queue store.
func NewQueueService(store *queue.Store) *QueueService {
	if store == nil {
		return nil
	}
	return &QueueService{reader: store, actions: store}
}

// List returns queue jobs filtered by status.
func (s *QueueService) List(ctx context.Context, statuses ...queue.Status) ([]QueueJob, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	jobs, err := s.reader.List(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	return FromJobs(jobs), nil
}

// Stats returns queue summary counts keyed by status string.
func (s *QueueService) Stats(ctx context.Context) (map[string]int, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	stats, err := s.reader.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return MergeQueueStats(stats), nil
}

// Health returns the queue health summary.
func (s *QueueService) Health(ctx context.Context) (QueueHealth, error) {
	if s == nil || s.reader == nil {
		return QueueHealth{}, nil
	}
	health, err := s.reader.Health(ctx)
	if err != nil {
		return QueueHealth{}, err
	}
	return FromHealth(health), nil
}

// Describe fetches a single queue job.
func (s *QueueService) Describe(ctx context.Context, id int64) (*QueueJob, error) {
	if s == nil || s.reader == nil {
		return nil, nil
	}
	job, err := s.reader.GetByID(ctx, id)
	if err != nil || job == nil {
		return nil, err
	}
	dto := FromJob(job)
	return &dto, nil
}

// Retry requeues failed jobs, all of them when no ids are given.
func (s *QueueService) Retry(ctx context.Context, ids ...int64) (int64, error) {
	if s == nil || s.actions == nil {
		return 0, nil
	}
	return s.actions.RetryFailed(ctx, ids...)
}

// ClearCompleted removes completed jobs.
func (s *QueueService) ClearCompleted(ctx context.Context) (int64, error) {
	if s == nil || s.actions == nil {
		return 0, nil
	}
	return s.actions.ClearCompleted(ctx)
}

// ClearFailed removes failed jobs.
func (s *QueueService) ClearFailed(ctx context.Context) (int64, error) {
	if s == nil || s.actions == nil {
		return 0, nil
	}
	return s.actions.ClearFailed(ctx)
}

// ClearAll removes every job.
func (s *QueueService) ClearAll(ctx context.Context) (int64, error) {
	if s == nil || s.actions == nil {
		return 0, nil
	}
	return s.actions.Clear(ctx)
}
