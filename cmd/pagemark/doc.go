// Package main hosts the Pagemark CLI entrypoint and command graph.
//
// The Cobra-based command tree covers saving bookmarks, inspecting and
// repairing the enrichment queue, full-text search, daemon status, and
// configuration scaffolding. Commands talk to the daemon HTTP API when it is
// running and fall back to direct store access otherwise; configuration
// resolution happens once per invocation in commandContext.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
