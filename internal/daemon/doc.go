// Package daemon wires the long-running process: it enforces single-instance
// execution with a lock file, starts and stops the workflow manager, and
// serves the local HTTP status API.
package daemon
