package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnsureTags resolves each distinct name to a tag id for the owner, creating
// missing tags. The insert ignores (owner, name) conflicts and the id is read
// back afterwards, so two workers racing to create the same tag both resolve
// to the single persisted row.
func (s *Store) EnsureTags(ctx context.Context, ownerID string, names []string) ([]Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(names))
	distinct := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}
	if len(distinct) == 0 {
		return nil, nil
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	tags := make([]Tag, 0, len(distinct))
	for _, name := range distinct {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO tags (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)
             ON CONFLICT (owner_id, name) DO NOTHING`,
			uuid.NewString(),
			ownerID,
			name,
			timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", name, err)
		}

		tag, err := s.tagByName(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *Store) tagByName(ctx context.Context, ownerID, name string) (Tag, error) {
	var tag Tag
	var createdRaw string
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, owner_id, name, created_at FROM tags WHERE owner_id = ? AND name = ?`,
		ownerID,
		name,
	)
	if err := row.Scan(&tag.ID, &tag.OwnerID, &tag.Name, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, fmt.Errorf("tag %q vanished after upsert", name)
		}
		return Tag{}, fmt.Errorf("lookup tag %q: %w", name, err)
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		tag.CreatedAt = created
	}
	return tag, nil
}

// AttachTags links each tag to the bookmark, ignoring pairs that already
// exist. Re-running after a partial failure converges to the same state.
func (s *Store) AttachTags(ctx context.Context, bookmarkID string, tagIDs []string, attachedBy AttachedBy) error {
	if len(tagIDs) == 0 {
		return nil
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, tagID := range tagIDs {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO bookmark_tags (bookmark_id, tag_id, attached_by, created_at)
             VALUES (?, ?, ?, ?)
             ON CONFLICT (bookmark_id, tag_id) DO NOTHING`,
			bookmarkID,
			tagID,
			attachedBy,
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("attach tag %s: %w", tagID, err)
		}
	}
	return nil
}

// TagsForBookmark returns the tags attached to a bookmark, ordered by name.
func (s *Store) TagsForBookmark(ctx context.Context, bookmarkID string) ([]Tag, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT t.id, t.owner_id, t.name, t.created_at
         FROM tags t
         JOIN bookmark_tags bt ON bt.tag_id = t.id
         WHERE bt.bookmark_id = ?
         ORDER BY t.name`,
		bookmarkID,
	)
	if err != nil {
		return nil, fmt.Errorf("tags for bookmark: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		var createdRaw string
		if err := rows.Scan(&tag.ID, &tag.OwnerID, &tag.Name, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			tag.CreatedAt = created
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Attachments returns the attachment rows for a bookmark, provenance included.
func (s *Store) Attachments(ctx context.Context, bookmarkID string) ([]Attachment, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT bookmark_id, tag_id, attached_by, created_at
         FROM bookmark_tags WHERE bookmark_id = ? ORDER BY tag_id`,
		bookmarkID,
	)
	if err != nil {
		return nil, fmt.Errorf("attachments: %w", err)
	}
	defer rows.Close()

	var attachments []Attachment
	for rows.Next() {
		var att Attachment
		var createdRaw string
		if err := rows.Scan(&att.BookmarkID, &att.TagID, &att.AttachedBy, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			att.CreatedAt = created
		}
		attachments = append(attachments, att)
	}
	return attachments, rows.Err()
}

// ListTags returns all tags for an owner ordered by name.
func (s *Store) ListTags(ctx context.Context, ownerID string) ([]Tag, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, owner_id, name, created_at FROM tags WHERE owner_id = ? ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		var createdRaw string
		if err := rows.Scan(&tag.ID, &tag.OwnerID, &tag.Name, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			tag.CreatedAt = created
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
