package bookmarks

import (
	"strings"
	"time"
)

// TaggingStatus is the per-bookmark enrichment outcome.
type TaggingStatus string

const (
	TaggingStatusPending TaggingStatus = "pending"
	TaggingStatusSuccess TaggingStatus = "success"
	TaggingStatusFailure TaggingStatus = "failure"
)

// ContentKind discriminates the bookmark content variant.
type ContentKind string

const (
	// ContentKindLink is a saved URL with optional page metadata.
	ContentKindLink ContentKind = "link"
	// ContentKindText is a free-form text snippet.
	ContentKindText ContentKind = "text"
)

// AttachedBy records who attached a tag to a bookmark.
type AttachedBy string

const (
	AttachedByUser AttachedBy = "user"
	AttachedByAI   AttachedBy = "ai"
)

// Bookmark is a saved link or text snippet owned by a single user.
// Exactly one content variant applies, selected by Kind: link bookmarks use
// URL/Title/Description/Content, text bookmarks use Text.
type Bookmark struct {
	ID      string
	OwnerID string

	Kind        ContentKind
	URL         string
	Title       string
	Description string
	Content     string
	Text        string

	Favourited    bool
	Archived      bool
	TaggingStatus TaggingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayTitle returns the most useful human-readable label for the bookmark.
func (b *Bookmark) DisplayTitle() string {
	if title := strings.TrimSpace(b.Title); title != "" {
		return title
	}
	if b.Kind == ContentKindLink && strings.TrimSpace(b.URL) != "" {
		return strings.TrimSpace(b.URL)
	}
	text := strings.TrimSpace(b.Text)
	if text == "" {
		return "(untitled)"
	}
	const limit = 60
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return text
}

// Tag is a per-owner label. Names are unique within one owner's namespace.
type Tag struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
}

// Attachment links a tag to a bookmark, recording provenance.
type Attachment struct {
	BookmarkID string
	TagID      string
	AttachedBy AttachedBy
	CreatedAt  time.Time
}

// NewLinkParams describes a link bookmark to create.
type NewLinkParams struct {
	OwnerID     string
	URL         string
	Title       string
	Description string
	Content     string
}

// NewTextParams describes a text bookmark to create.
type NewTextParams struct {
	OwnerID string
	Text    string
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	OwnerID    string
	Favourited *bool
	Archived   *bool
	Status     TaggingStatus
}
