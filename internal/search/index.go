package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"pagemark/internal/logging"
)

// Index wraps a Bleve index over bookmark documents. All methods are safe
// for concurrent use.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Open creates or opens the search index under dir. An index built with an
// older mapping version is discarded and recreated empty; index jobs refill
// it as bookmarks are re-enriched.
func Open(dir string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "search")

	indexPath := filepath.Join(dir, "bookmarks.bleve")
	versionPath := filepath.Join(dir, "bookmarks.version")

	var index bleve.Index
	needsRebuild := false

	indexExists := false
	if _, err := os.Stat(indexPath); err == nil {
		indexExists = true
	}
	if indexExists {
		existing, err := os.ReadFile(versionPath)
		if err != nil || string(existing) != mappingVersion {
			logger.Info("index mapping outdated, rebuilding", slog.String("path", indexPath))
			needsRebuild = true
		}
	}

	if indexExists && !needsRebuild {
		opened, err := bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, recreating", slog.String("path", indexPath), logging.Error(err))
			needsRebuild = true
		} else {
			index = opened
		}
	}

	if needsRebuild {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
	}

	if index == nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
		created, err := bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		index = created
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write index version file", logging.Error(err))
		}
	}

	return &Index{index: index, path: indexPath, logger: logger}, nil
}

// Close releases the underlying index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Upsert indexes a bookmark document, replacing any previous version.
func (s *Index) Upsert(doc *Document) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID, doc.toMap())
}

// Delete removes a bookmark from the index. Deleting an absent document is
// a no-op.
func (s *Index) Delete(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

// Count returns the number of indexed documents.
func (s *Index) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Hit is a single search result.
type Hit struct {
	ID    string   `json:"id"`
	Score float64  `json:"score"`
	Title string   `json:"title"`
	URL   string   `json:"url,omitempty"`
	Kind  string   `json:"kind"`
	Tags  []string `json:"tags,omitempty"`
}

// Result carries the outcome of a search query.
type Result struct {
	Query string `json:"query"`
	Total uint64 `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// Params configures a search.
type Params struct {
	Query   string
	OwnerID string
	Limit   int
	Offset  int
}

// Search runs a full-text query over the index. An empty query matches all
// documents, scoped to the owner when one is given.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var q query.Query
	if params.Query == "" {
		q = bleve.NewMatchAllQuery()
	} else {
		match := bleve.NewMatchQuery(params.Query)
		q = match
	}
	if params.OwnerID != "" {
		owner := bleve.NewTermQuery(params.OwnerID)
		owner.SetField("owner_id")
		q = bleve.NewConjunctionQuery(q, owner)
	}

	request := bleve.NewSearchRequestOptions(q, limit, params.Offset, false)
	request.Fields = []string{"title", "url", "kind", "tags"}

	response, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	result := &Result{
		Query: params.Query,
		Total: response.Total,
		Hits:  make([]Hit, 0, len(response.Hits)),
	}
	for _, hit := range response.Hits {
		result.Hits = append(result.Hits, Hit{
			ID:    hit.ID,
			Score: hit.Score,
			Title: stringField(hit.Fields, "title"),
			URL:   stringField(hit.Fields, "url"),
			Kind:  stringField(hit.Fields, "kind"),
			Tags:  stringsField(hit.Fields, "tags"),
		})
	}
	return result, nil
}

func stringField(fields map[string]any, name string) string {
	if value, ok := fields[name].(string); ok {
		return value
	}
	return ""
}

func stringsField(fields map[string]any, name string) []string {
	switch value := fields[name].(type) {
	case string:
		return []string{value}
	case []any:
		out := make([]string, 0, len(value))
		for _, entry := range value {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
