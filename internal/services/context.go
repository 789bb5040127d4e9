package services

import "context"

type contextKey string

const (
	jobIDKey      contextKey = "job_id"
	bookmarkIDKey contextKey = "bookmark_id"
	laneKey       contextKey = "lane"
	requestIDKey  contextKey = "request_id"
)

// WithJobID annotates context with the queue job identifier.
func WithJobID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the queue job identifier if present.
func JobIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(jobIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithBookmarkID annotates context with the bookmark the job targets.
func WithBookmarkID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, bookmarkIDKey, id)
}

// BookmarkIDFromContext returns the bookmark identifier if present.
func BookmarkIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(bookmarkIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithLane annotates context with the workflow lane name.
func WithLane(ctx context.Context, lane string) context.Context {
	if lane == "" {
		return ctx
	}
	return context.WithValue(ctx, laneKey, lane)
}

// LaneFromContext returns the lane name if present.
func LaneFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(laneKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
