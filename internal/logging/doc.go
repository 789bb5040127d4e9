// Package logging wires log/slog with the handlers and helpers the daemon
// and CLI share: a console handler for interactive use, a JSON handler for
// machine-readable logs, typed attribute constructors, and context-derived
// standard fields (job id, bookmark id, lane, correlation id).
package logging
