// Package workflow coordinates queue processing. The manager runs one poll
// loop per lane (enrichment, indexing), claims jobs for the lane's handler,
// keeps heartbeats fresh while a handler runs, and translates handler
// outcomes into terminal queue state and bookmark tagging status.
package workflow
