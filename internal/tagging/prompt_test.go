package tagging

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pagemark/internal/bookmarks"
	"pagemark/internal/services"
)

func wordRange(first, last int) string {
	words := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	return strings.Join(words, " ")
}

func TestBuildPromptLinkUsesDescription(t *testing.T) {
	prompt, err := BuildPrompt(&bookmarks.Bookmark{
		Kind:        bookmarks.ContentKindLink,
		Title:       "Go Concurrency",
		URL:         "https://example.com/go",
		Description: "An article about goroutines and channels",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "An article about goroutines and channels") {
		t.Fatalf("prompt missing description: %q", prompt)
	}
	if !strings.Contains(prompt, "Go Concurrency") || !strings.Contains(prompt, "https://example.com/go") {
		t.Fatalf("prompt missing title or url: %q", prompt)
	}
}

func TestBuildPromptLinkPrefersLongerField(t *testing.T) {
	prompt, err := BuildPrompt(&bookmarks.Bookmark{
		Kind:        bookmarks.ContentKindLink,
		Description: "short",
		Content:     "a considerably longer fetched page body",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "a considerably longer fetched page body") {
		t.Fatalf("prompt should carry the longer field: %q", prompt)
	}
	if strings.Contains(prompt, "short") {
		t.Fatalf("prompt should not carry the shorter field: %q", prompt)
	}
}

func TestBuildPromptLinkWithoutContentFails(t *testing.T) {
	_, err := BuildPrompt(&bookmarks.Bookmark{Kind: bookmarks.ContentKindLink, URL: "https://example.com"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestBuildPromptUnknownKindFails(t *testing.T) {
	_, err := BuildPrompt(&bookmarks.Bookmark{Kind: bookmarks.ContentKind("audio")})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestBuildPromptTruncationBoundary(t *testing.T) {
	// Exactly at the limit nothing is dropped.
	prompt, err := BuildPrompt(&bookmarks.Bookmark{
		Kind:    bookmarks.ContentKindLink,
		Content: wordRange(1, 2000),
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "w1 ") || !strings.Contains(prompt, "w2000") {
		t.Fatal("content at the limit should be kept whole")
	}

	// One word over keeps only the overflow.
	prompt, err = BuildPrompt(&bookmarks.Bookmark{
		Kind:    bookmarks.ContentKindLink,
		Content: wordRange(1, 2001),
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.HasSuffix(prompt, "Content:\nw2001") {
		t.Fatalf("expected only the overflow word, got tail %q", prompt[len(prompt)-40:])
	}
}

func TestBuildPromptTruncationKeepsTail(t *testing.T) {
	prompt, err := BuildPrompt(&bookmarks.Bookmark{
		Kind:    bookmarks.ContentKindLink,
		Content: wordRange(1, 2500),
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if strings.Contains(prompt, "w2000 ") {
		t.Fatal("words up to the limit should be dropped")
	}
	if !strings.Contains(prompt, "w2001 ") || !strings.Contains(prompt, "w2500") {
		t.Fatal("words after the limit should be kept")
	}
}

func TestBuildPromptTextVerbatim(t *testing.T) {
	text := wordRange(1, 2500)
	prompt, err := BuildPrompt(&bookmarks.Bookmark{
		Kind: bookmarks.ContentKindText,
		Text: text,
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, text) {
		t.Fatal("text bookmarks should not be truncated")
	}
}

func TestBuildPromptEmptyTextFails(t *testing.T) {
	_, err := BuildPrompt(&bookmarks.Bookmark{Kind: bookmarks.ContentKindText, Text: "   "})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}
