package api

import (
	"pagemark/internal/bookmarks"
	"pagemark/internal/queue"
)

// FromJob converts a queue job to its API representation.
func FromJob(job *queue.Job) QueueJob {
	if job == nil {
		return QueueJob{}
	}
	return QueueJob{
		ID:           job.ID,
		Kind:         string(job.Kind),
		BookmarkID:   job.BookmarkID,
		Status:       string(job.Status),
		ErrorMessage: job.ErrorMessage,
		Attempts:     job.Attempts,
		CreatedAt:    formatTime(job.CreatedAt),
		UpdatedAt:    formatTime(job.UpdatedAt),
	}
}

// FromJobs converts a slice of queue jobs.
func FromJobs(jobs []*queue.Job) []QueueJob {
	out := make([]QueueJob, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, FromJob(job))
	}
	return out
}

// FromHealth converts a queue health summary.
func FromHealth(health queue.HealthSummary) QueueHealth {
	return QueueHealth{
		Total:      health.Total,
		Pending:    health.Pending,
		Processing: health.Processing,
		Completed:  health.Completed,
		Failed:     health.Failed,
	}
}

// FromBookmark converts a bookmark and its tags to a view.
func FromBookmark(bookmark *bookmarks.Bookmark, tags []bookmarks.Tag) BookmarkView {
	if bookmark == nil {
		return BookmarkView{}
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return BookmarkView{
		ID:            bookmark.ID,
		OwnerID:       bookmark.OwnerID,
		Kind:          string(bookmark.Kind),
		Title:         bookmark.DisplayTitle(),
		URL:           bookmark.URL,
		Description:   bookmark.Description,
		Favourited:    bookmark.Favourited,
		Archived:      bookmark.Archived,
		TaggingStatus: string(bookmark.TaggingStatus),
		Tags:          names,
		CreatedAt:     formatTime(bookmark.CreatedAt),
	}
}

// MergeQueueStats flattens status counts into string keys for transport.
func MergeQueueStats(stats map[queue.Status]int) map[string]int {
	merged := make(map[string]int, len(stats))
	for status, count := range stats {
		merged[string(status)] = count
	}
	return merged
}
