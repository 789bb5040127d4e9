package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pagemark/internal/config"
)

// Store manages bookmark persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the bookmark database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath connects to the bookmark database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewLink inserts a link bookmark awaiting enrichment.
func (s *Store) NewLink(ctx context.Context, params NewLinkParams) (*Bookmark, error) {
	if strings.TrimSpace(params.OwnerID) == "" {
		return nil, errors.New("owner id is required")
	}
	if strings.TrimSpace(params.URL) == "" {
		return nil, errors.New("url is required")
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO bookmarks (
            id, owner_id, kind, url, title, description, content, text,
            favourited, archived, tagging_status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?, ?)`,
		id,
		params.OwnerID,
		ContentKindLink,
		params.URL,
		nullableString(params.Title),
		nullableString(params.Description),
		nullableString(params.Content),
		nil,
		TaggingStatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert link bookmark: %w", err)
	}
	return s.GetByID(ctx, id)
}

// NewText inserts a text-snippet bookmark awaiting enrichment.
func (s *Store) NewText(ctx context.Context, params NewTextParams) (*Bookmark, error) {
	if strings.TrimSpace(params.OwnerID) == "" {
		return nil, errors.New("owner id is required")
	}
	if strings.TrimSpace(params.Text) == "" {
		return nil, errors.New("text is required")
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO bookmarks (
            id, owner_id, kind, url, title, description, content, text,
            favourited, archived, tagging_status, created_at, updated_at
        ) VALUES (?, ?, ?, NULL, NULL, NULL, NULL, ?, 0, 0, ?, ?, ?)`,
		id,
		params.OwnerID,
		ContentKindText,
		params.Text,
		TaggingStatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert text bookmark: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a bookmark by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`, id)
	bookmark, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return bookmark, nil
}

// List returns bookmarks matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks`
	var clauses []string
	var args []any

	if filter.OwnerID != "" {
		clauses = append(clauses, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Favourited != nil {
		clauses = append(clauses, "favourited = ?")
		args = append(args, boolToInt(*filter.Favourited))
	}
	if filter.Archived != nil {
		clauses = append(clauses, "archived = ?")
		args = append(args, boolToInt(*filter.Archived))
	}
	if filter.Status != "" {
		clauses = append(clauses, "tagging_status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var result []*Bookmark
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, bookmark)
	}
	return result, rows.Err()
}

// SetFavourited updates the favourited flag.
func (s *Store) SetFavourited(ctx context.Context, id string, favourited bool) error {
	return s.setFlag(ctx, id, "favourited", favourited)
}

// SetArchived updates the archived flag.
func (s *Store) SetArchived(ctx context.Context, id string, archived bool) error {
	return s.setFlag(ctx, id, "archived", archived)
}

func (s *Store) setFlag(ctx context.Context, id, column string, value bool) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE bookmarks SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		boolToInt(value),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bookmark %s not found", id)
	}
	return nil
}

// SetTaggingStatus records the enrichment outcome for a bookmark.
// Returns false without error when the bookmark no longer exists.
func (s *Store) SetTaggingStatus(ctx context.Context, id string, status TaggingStatus) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE bookmarks SET tagging_status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("update tagging status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Remove deletes a bookmark and its attachments.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// StatusCounts returns bookmark counts grouped by tagging status.
func (s *Store) StatusCounts(ctx context.Context) (map[TaggingStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tagging_status, COUNT(1) FROM bookmarks GROUP BY tagging_status`)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[TaggingStatus]int)
	for rows.Next() {
		var status TaggingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

const bookmarkColumns = "id, owner_id, kind, url, title, description, content, text, favourited, archived, tagging_status, created_at, updated_at"

func scanBookmark(scanner interface{ Scan(dest ...any) error }) (*Bookmark, error) {
	var (
		id          string
		ownerID     string
		kind        string
		url         sql.NullString
		title       sql.NullString
		description sql.NullString
		content     sql.NullString
		text        sql.NullString
		favourited  int
		archived    int
		statusStr   string
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&kind,
		&url,
		&title,
		&description,
		&content,
		&text,
		&favourited,
		&archived,
		&statusStr,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	bookmark := &Bookmark{
		ID:            id,
		OwnerID:       ownerID,
		Kind:          ContentKind(kind),
		URL:           url.String,
		Title:         title.String,
		Description:   description.String,
		Content:       content.String,
		Text:          text.String,
		Favourited:    favourited != 0,
		Archived:      archived != 0,
		TaggingStatus: TaggingStatus(statusStr),
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		bookmark.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		bookmark.UpdatedAt = updated
	}
	return bookmark, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
