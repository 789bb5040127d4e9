// Package tagging implements the bookmark enrichment stage: it builds a
// prompt from the bookmark's content, asks the completion provider for
// candidate tags, and persists the results through the bookmarks store.
package tagging
