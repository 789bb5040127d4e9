package search

import (
	"pagemark/internal/bookmarks"
)

// Document is the shape indexed for each bookmark.
type Document struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"created_at"`
}

// NewDocument builds an index document from a bookmark and its tag names.
func NewDocument(bookmark *bookmarks.Bookmark, tags []bookmarks.Tag) *Document {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	body := bookmark.Content
	if bookmark.Kind == bookmarks.ContentKindText {
		body = bookmark.Text
	}
	return &Document{
		ID:          bookmark.ID,
		OwnerID:     bookmark.OwnerID,
		Kind:        string(bookmark.Kind),
		Title:       bookmark.DisplayTitle(),
		Description: bookmark.Description,
		Body:        body,
		URL:         bookmark.URL,
		Tags:        names,
		CreatedAt:   bookmark.CreatedAt.UnixMilli(),
	}
}

// toMap converts the document to lowercase field names matching the index
// mapping. Bleve would otherwise index by Go struct field names.
func (d *Document) toMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"kind":        d.Kind,
		"title":       d.Title,
		"description": d.Description,
		"body":        d.Body,
		"url":         d.URL,
		"tags":        d.Tags,
		"created_at":  d.CreatedAt,
	}
}
