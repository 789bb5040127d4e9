// Package services defines shared utilities consumed by the workflow job
// handlers and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, bookmark IDs, lane names, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across the enrichment pipeline.
//
// Use these helpers when wiring new handler logic so operational behaviour
// (error handling, observability, retries) stays uniform across the pipeline.
package services
