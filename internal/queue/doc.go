// Package queue implements the SQLite-backed job queue that drives the
// enrichment and indexing lanes. Jobs carry a kind and a bookmark id;
// workers claim the oldest pending job per kind, and terminal outcomes are
// recorded on the job row. Heartbeats let a restarted daemon reclaim jobs a
// crashed worker left in processing.
package queue
