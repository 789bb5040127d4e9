package tagging

import (
	"fmt"
	"strings"

	"pagemark/internal/bookmarks"
	"pagemark/internal/services"
)

// maxPromptWords bounds how much bookmark content is fed to the provider.
const maxPromptWords = 2000

const systemPrompt = `You are a bookmarking assistant that assigns topical tags to saved content.
Analyze the content the user provides and respond with a JSON object of the
form {"tags": ["tag1", "tag2", ...]} containing between 3 and 5 tags. Tags
must be lowercase and must not contain spaces. Respond with JSON only.`

// SystemPrompt returns the instruction message sent with every inference
// request.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt produces the user prompt for a bookmark. Link bookmarks need a
// description or fetched content to work from; text bookmarks are passed
// through verbatim.
func BuildPrompt(bookmark *bookmarks.Bookmark) (string, error) {
	if bookmark == nil {
		return "", services.Wrap(services.ErrValidation, "tagging", "build prompt", "bookmark required", nil)
	}
	switch bookmark.Kind {
	case bookmarks.ContentKindLink:
		body := longerOf(bookmark.Description, bookmark.Content)
		if strings.TrimSpace(body) == "" {
			return "", services.Wrap(services.ErrValidation, "tagging", "build prompt", "link bookmark has no description or content", nil)
		}
		return linkPrompt(bookmark, truncateWords(body)), nil
	case bookmarks.ContentKindText:
		if strings.TrimSpace(bookmark.Text) == "" {
			return "", services.Wrap(services.ErrValidation, "tagging", "build prompt", "text bookmark is empty", nil)
		}
		return textPrompt(bookmark), nil
	default:
		return "", services.Wrap(services.ErrValidation, "tagging", "build prompt", fmt.Sprintf("unsupported content kind %q", bookmark.Kind), nil)
	}
}

func linkPrompt(bookmark *bookmarks.Bookmark, body string) string {
	var sb strings.Builder
	sb.WriteString("Suggest tags for this saved link.\n")
	if title := strings.TrimSpace(bookmark.Title); title != "" {
		sb.WriteString("Title: ")
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	if url := strings.TrimSpace(bookmark.URL); url != "" {
		sb.WriteString("URL: ")
		sb.WriteString(url)
		sb.WriteString("\n")
	}
	sb.WriteString("Content:\n")
	sb.WriteString(body)
	return sb.String()
}

func textPrompt(bookmark *bookmarks.Bookmark) string {
	var sb strings.Builder
	sb.WriteString("Suggest tags for this saved note.\n")
	if title := strings.TrimSpace(bookmark.Title); title != "" {
		sb.WriteString("Title: ")
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	sb.WriteString("Content:\n")
	sb.WriteString(bookmark.Text)
	return sb.String()
}

// truncateWords keeps the words after the first maxPromptWords when the
// content is longer than the limit.
func truncateWords(body string) string {
	words := strings.Fields(body)
	if len(words) <= maxPromptWords {
		return body
	}
	return strings.Join(words[maxPromptWords:], " ")
}

func longerOf(a, b string) string {
	if len(strings.TrimSpace(b)) > len(strings.TrimSpace(a)) {
		return b
	}
	return a
}
