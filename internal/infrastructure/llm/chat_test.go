package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatClientComplete(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "  the answer  "}}]}`))
	}))
	defer server.Close()

	c := newChatClient(server.Client(), server.URL, "deepseek-chat", "sk-test")

	got, err := c.complete(context.Background(), "system prompt", "user prompt", 0.3, 500)
	if err != nil {
		t.Fatalf("complete error: %v", err)
	}
	if got != "the answer" {
		t.Fatalf("expected trimmed content, got %q", got)
	}

	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth: %q", gotAuth)
	}
	if gotBody.Model != "deepseek-chat" || gotBody.Temperature != 0.3 || gotBody.MaxTokens != 500 {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotBody.Messages)
	}
}

func TestChatClientTrailingSlash(t *testing.T) {
	t.Parallel()

	c := newChatClient(nil, "https://api.deepseek.com/", "m", "k")
	if c.endpoint != "https://api.deepseek.com/chat/completions" {
		t.Fatalf("unexpected endpoint: %s", c.endpoint)
	}
}

func TestChatClientErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "insufficient quota"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newChatClient(server.Client(), server.URL, "m", "k")
	_, err := c.complete(context.Background(), "s", "u", 0.1, 10)
	if err == nil || !strings.Contains(err.Error(), "insufficient quota") {
		t.Fatalf("expected quota error detail, got: %v", err)
	}
}

func TestChatClientEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	c := newChatClient(server.Client(), server.URL, "m", "k")
	if _, err := c.complete(context.Background(), "s", "u", 0.1, 10); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestGeminiClientComplete(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "gemini says hi"}]}}]}`))
	}))
	defer server.Close()

	g := newGeminiClient(server.Client(), "gemini-1.5-flash", "g-key")
	g.baseURL = server.URL

	got, err := g.complete(context.Background(), "s", "u", 0.5, 100)
	if err != nil {
		t.Fatalf("complete error: %v", err)
	}
	if got != "gemini says hi" {
		t.Fatalf("unexpected content: %q", got)
	}
	if gotPath != "/models/gemini-1.5-flash:generateContent" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotKey != "g-key" {
		t.Fatalf("unexpected key: %q", gotKey)
	}
}

func TestGeminiClientNoCandidates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	g := newGeminiClient(server.Client(), "m", "k")
	g.baseURL = server.URL

	if _, err := g.complete(context.Background(), "s", "u", 0.5, 100); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
}
