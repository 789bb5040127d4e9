// Package bookmarks defines the bookmark domain model and its SQLite
// persistence: bookmarks with a link or text content variant, per-owner tags,
// bookmark-tag attachments with provenance, and the per-bookmark tagging
// status the enrichment pipeline maintains.
//
// Tag and attachment writes use insert-ignore upserts so concurrent or
// retried enrichment jobs converge to the same persisted state without
// explicit locking.
package bookmarks
