package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatServer(t *testing.T, check func(r *http.Request, body chatRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		json.NewDecoder(r.Body).Decode(&body)
		if check != nil {
			check(r, body)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"## Features\n- Added widgets"}}],"usage":{"total_tokens":50}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAI_Complete(t *testing.T) {
	server := chatServer(t, func(r *http.Request, body chatRequest) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing or wrong Authorization header")
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Content != "lines" {
			t.Errorf("messages = %+v", body.Messages)
		}
		if body.MaxTokens != defaultMaxTokens {
			t.Errorf("MaxTokens = %d, want %d", body.MaxTokens, defaultMaxTokens)
		}
	})

	c := &ChatCompletions{name: "openai", apiKey: "test-key", model: "gpt-4o", url: server.URL, client: server.Client()}
	resp, err := c.Complete(context.Background(), CompletionRequest{SystemPrompt: "sys", UserPrompt: "lines"})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Content != "## Features\n- Added widgets" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.TokensUsed != 50 {
		t.Errorf("TokensUsed = %d, want 50", resp.TokensUsed)
	}
}

func TestOllama_NoKeyNoAuthorization(t *testing.T) {
	server := chatServer(t, func(r *http.Request, body chatRequest) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Expected no Authorization header for keyless Ollama")
		}
		if body.Model != "llama3" {
			t.Errorf("model = %q", body.Model)
		}
	})

	c := &ChatCompletions{name: "ollama", model: "llama3", url: server.URL, client: server.Client()}
	if _, err := c.Complete(context.Background(), CompletionRequest{UserPrompt: "x"}); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"x"}`))
	}))
	defer server.Close()

	c := &ChatCompletions{name: "openai", apiKey: "k", model: "gpt-4o", url: server.URL, client: server.Client()}
	resp, err := c.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	if err != nil {
		t.Fatalf("Missing choices should not fail: %v", err)
	}
	if resp.Content != "" {
		t.Errorf("Content = %q, want empty", resp.Content)
	}
}

func TestOpenAI_RateLimitNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	c := &ChatCompletions{name: "openai", apiKey: "k", model: "gpt-4o", url: server.URL, client: server.Client()}
	_, err := c.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("err = %v, want 429 StatusError", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestOpenAI_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	c := &ChatCompletions{name: "openai", apiKey: "bad", model: "gpt-4o", url: server.URL, client: server.Client()}
	_, err := c.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	if !IsAuthError(err) {
		t.Errorf("Expected auth error, got: %v", err)
	}
}
