// Package notifications delivers daemon events via ntfy.
//
// The default implementation publishes to the topic configured in
// config.toml and degrades to a no-op when no topic is set. Workflow code
// depends only on the Service interface, so alternative transports can be
// dropped in without touching the pipeline.
package notifications
