package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pagemark/internal/config"
)

const userAgent = "Pagemark/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyEnrichmentCompleted(ctx context.Context, bookmarkTitle string, tagCount int) error
	NotifyEnrichmentFailed(ctx context.Context, bookmarkTitle string, err error) error
	NotifyQueueDrained(ctx context.Context, processed, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		enrichment: cfg.Notifications.Enrichment,
		queue:      cfg.Notifications.Queue,
		errors:     cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	enrichment bool
	queue      bool
	errors     bool
}

func (n *ntfyService) NotifyEnrichmentCompleted(ctx context.Context, bookmarkTitle string, tagCount int) error {
	if !n.enrichment {
		return nil
	}
	bookmarkTitle = strings.TrimSpace(bookmarkTitle)
	data := payload{
		title:   "Pagemark - Enriched",
		message: fmt.Sprintf("Tagged %q with %d tags", bookmarkTitle, tagCount),
		tags:    []string{"pagemark", "enrichment", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyEnrichmentFailed(ctx context.Context, bookmarkTitle string, err error) error {
	if !n.enrichment {
		return nil
	}
	bookmarkTitle = strings.TrimSpace(bookmarkTitle)
	reason := "unknown"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "Pagemark - Enrichment Failed",
		message:  fmt.Sprintf("Could not tag %q: %s", bookmarkTitle, reason),
		tags:     []string{"pagemark", "enrichment", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyQueueDrained(ctx context.Context, processed, failed int, duration time.Duration) error {
	if !n.queue {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var title, message string
	if failed == 0 {
		title = "Pagemark - Queue Drained"
		message = fmt.Sprintf("Processed %d jobs in %s", processed, duration)
	} else {
		title = "Pagemark - Queue Drained (with errors)"
		message = fmt.Sprintf("Processed %d jobs, %d failed in %s", processed, failed, duration)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"pagemark", "queue", "drained"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" in ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Pagemark - Error",
		message:  builder.String(),
		tags:     []string{"pagemark", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Pagemark - Test",
		message:  "Notification system test",
		tags:     []string{"pagemark", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyEnrichmentCompleted(context.Context, string, int) error { return nil }
func (noopService) NotifyEnrichmentFailed(context.Context, string, error) error  { return nil }
func (noopService) NotifyQueueDrained(context.Context, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
