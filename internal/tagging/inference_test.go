package tagging_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pagemark/internal/services"
	"pagemark/internal/tagging"
)

func TestInferTagsNormalizesHashPrefix(t *testing.T) {
	client := &fakeCompleter{configured: true, response: `{"tags":["#golang","testing","##double"]}`}
	tags, err := tagging.InferTags(context.Background(), client, "prompt")
	if err != nil {
		t.Fatalf("InferTags: %v", err)
	}
	want := []string{"golang", "testing", "#double"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v", tags)
	}
	for i, tag := range want {
		if tags[i] != tag {
			t.Fatalf("tags[%d] = %q, want %q", i, tags[i], tag)
		}
	}
}

func TestInferTagsDropsBlankEntries(t *testing.T) {
	client := &fakeCompleter{configured: true, response: `{"tags":["go","","#"]}`}
	tags, err := tagging.InferTags(context.Background(), client, "prompt")
	if err != nil {
		t.Fatalf("InferTags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "go" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestInferTagsAcceptsFencedPayload(t *testing.T) {
	client := &fakeCompleter{configured: true, response: "```json\n{\"tags\":[\"go\"]}\n```"}
	tags, err := tagging.InferTags(context.Background(), client, "prompt")
	if err != nil {
		t.Fatalf("InferTags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "go" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestInferTagsMalformedPayload(t *testing.T) {
	client := &fakeCompleter{configured: true, response: "no json here"}
	if _, err := tagging.InferTags(context.Background(), client, "prompt"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("error = %v, want provider", err)
	}
}

func TestInferTagsMissingTagsField(t *testing.T) {
	client := &fakeCompleter{configured: true, response: `{"result":"ok"}`}
	if _, err := tagging.InferTags(context.Background(), client, "prompt"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("error = %v, want provider", err)
	}
}

func TestInferTagsProviderError(t *testing.T) {
	client := &fakeCompleter{configured: true, err: errors.New("boom")}
	if _, err := tagging.InferTags(context.Background(), client, "prompt"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("error = %v, want provider", err)
	}
}

func TestInferTagsClassifiesTimeout(t *testing.T) {
	client := &fakeCompleter{configured: true, err: fmt.Errorf("llm request: http error: %w", context.DeadlineExceeded)}
	_, err := tagging.InferTags(context.Background(), client, "prompt")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("error = %v, want timeout", err)
	}
	if errors.Is(err, services.ErrProvider) {
		t.Fatalf("timeout should not also classify as provider failure: %v", err)
	}
}
