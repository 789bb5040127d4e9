// Package llm provides the OpenRouter chat-completion client used for
// bookmark tag inference. Requests always ask for a JSON object response
// and retry transient failures with exponential backoff.
package llm
