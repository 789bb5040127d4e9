package api

import "time"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// QueueJob describes a queue entry in a transport-friendly format.
type QueueJob struct {
	ID           int64  `json:"id"`
	Kind         string `json:"kind"`
	BookmarkID   string `json:"bookmarkId"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Attempts     int    `json:"attempts"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// QueueListResponse wraps job listings for the HTTP API.
type QueueListResponse struct {
	Jobs []QueueJob `json:"jobs"`
}

// QueueHealth summarizes queue state for status surfaces.
type QueueHealth struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// BookmarkView describes a bookmark with its attached tags.
type BookmarkView struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"ownerId"`
	Kind          string   `json:"kind"`
	Title         string   `json:"title"`
	URL           string   `json:"url,omitempty"`
	Description   string   `json:"description,omitempty"`
	Favourited    bool     `json:"favourited"`
	Archived      bool     `json:"archived"`
	TaggingStatus string   `json:"taggingStatus"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// DaemonStatus reports daemon runtime information over HTTP.
type DaemonStatus struct {
	Running      bool        `json:"running"`
	PID          int         `json:"pid"`
	Queue        QueueHealth `json:"queue"`
	LastError    string      `json:"lastError,omitempty"`
	DatabasePath string      `json:"databasePath"`
	QueueDBPath  string      `json:"queueDbPath"`
	LockFilePath string      `json:"lockFilePath"`
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dateTimeFormat)
}
