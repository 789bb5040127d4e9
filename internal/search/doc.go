// Package search maintains the Bleve full-text index over bookmarks and
// serves queries for the CLI and the daemon HTTP API. Index jobs emitted by
// the enrichment pipeline keep the index in step with the bookmark store.
package search
