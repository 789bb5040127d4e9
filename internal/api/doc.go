// Package api provides the service layer shared by the CLI and the daemon's
// HTTP endpoints: queue views and actions, bookmark operations, and the DTOs
// both surfaces render.
package api
