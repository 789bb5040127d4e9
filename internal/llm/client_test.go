package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(serverURL string, opts ...Option) *Client {
	base := []Option{
		WithRetryBackoff(0, 0),
		WithSleeper(func(time.Duration) {}),
	}
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "test-model",
	}, append(base, opts...)...)
}

func TestCompleteJSONReturnsContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"tags\":[\"go\",\"testing\"]}"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	var parsed struct {
		Tags []string `json:"tags"`
	}
	if err := DecodeLLMJSON(content, &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if len(parsed.Tags) != 2 || parsed.Tags[0] != "go" {
		t.Fatalf("tags = %v", parsed.Tags)
	}
}

func TestCompleteJSONRequiresPrompts(t *testing.T) {
	client := NewClient(Config{APIKey: "key"})
	if _, err := client.CompleteJSON(context.Background(), "", "user"); err == nil {
		t.Fatal("expected error for empty system prompt")
	}
	if _, err := client.CompleteJSON(context.Background(), "system", ""); err == nil {
		t.Fatal("expected error for empty user prompt")
	}
}

func TestCompleteJSONRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if client.Configured() {
		t.Fatal("Configured should be false without api key")
	}
}

func TestCompleteJSONRetriesServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetryMaxAttempts(3))
	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if !strings.Contains(content, "ok") {
		t.Fatalf("content = %q", content)
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestCompleteJSONDoesNotRetryClientError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetryMaxAttempts(3))
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestCompleteJSONRetriesEmptyContent(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"choices":[{"message":{"content":""},"finish_reason":"length"}]}`))
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetryMaxAttempts(2))
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestCompleteJSONTakesDeltaFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"delta":{"content":"{\"tags\":[]}"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if content != `{"tags":[]}` {
		t.Fatalf("content = %q", content)
	}
}

func TestDecodeLLMJSONStripsCodeFence(t *testing.T) {
	var parsed struct {
		Tags []string `json:"tags"`
	}
	payload := "```json\n{\"tags\":[\"rust\"]}\n```"
	if err := DecodeLLMJSON(payload, &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if len(parsed.Tags) != 1 || parsed.Tags[0] != "rust" {
		t.Fatalf("tags = %v", parsed.Tags)
	}
}

func TestDecodeLLMJSONExtractsEmbeddedObject(t *testing.T) {
	var parsed struct {
		Tags []string `json:"tags"`
	}
	payload := `Here are the tags you asked for: {"tags":["go"]} hope that helps`
	if err := DecodeLLMJSON(payload, &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if len(parsed.Tags) != 1 || parsed.Tags[0] != "go" {
		t.Fatalf("tags = %v", parsed.Tags)
	}
}

func TestDecodeLLMJSONRejectsGarbage(t *testing.T) {
	var parsed struct{}
	if err := DecodeLLMJSON("not json at all", &parsed); err == nil {
		t.Fatal("expected error")
	}
	if err := DecodeLLMJSON("", &parsed); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
