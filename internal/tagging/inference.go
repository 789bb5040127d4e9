package tagging

import (
	"context"
	"errors"
	"net"
	"strings"

	"pagemark/internal/llm"
	"pagemark/internal/services"
)

// Completer is the slice of the provider client the inference path needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Configured() bool
}

type tagResponse struct {
	Tags []string `json:"tags"`
}

// InferTags issues a single completion request for the supplied prompt and
// returns the normalized tag names the model produced.
func InferTags(ctx context.Context, client Completer, prompt string) ([]string, error) {
	content, err := client.CompleteJSON(ctx, systemPrompt, prompt)
	if err != nil {
		if isTimeout(err) {
			return nil, services.Wrap(services.ErrTimeout, "tagging", "infer tags", "completion request timed out", err)
		}
		return nil, services.Wrap(services.ErrProvider, "tagging", "infer tags", "completion request failed", err)
	}
	var parsed tagResponse
	if err := llm.DecodeLLMJSON(content, &parsed); err != nil {
		return nil, services.Wrap(services.ErrProvider, "tagging", "infer tags", "malformed provider response", err)
	}
	if parsed.Tags == nil {
		return nil, services.Wrap(services.ErrProvider, "tagging", "infer tags", "provider response missing tags field", nil)
	}
	return normalizeTags(parsed.Tags), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// normalizeTags strips a single leading hash from each tag and drops blanks.
// Models occasionally return hashtag-style names despite the prompt.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimPrefix(tag, "#")
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
