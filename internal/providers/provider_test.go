package providers

import (
	"strings"
	"testing"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("unknown", "model")
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("New(unknown) error = %v", err)
	}
}

func TestNew_MissingModel(t *testing.T) {
	_, err := New("openai", "")
	if err == nil {
		t.Fatal("Expected error for empty model")
	}
	if !strings.Contains(err.Error(), "model name is not set") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_MissingKeyIsAuthError(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	for _, name := range []string{"anthropic", "openai", "gemini", "google"} {
		_, err := New(name, "some-model")
		if err == nil {
			t.Errorf("New(%q) should fail without a key", name)
			continue
		}
		if !IsAuthError(err) {
			t.Errorf("New(%q) missing key should be an auth error: %v", name, err)
		}
	}
}

func TestNew_Names(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "k")
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("GEMINI_API_KEY", "k")

	tests := map[string]string{
		"anthropic": "anthropic",
		"openai":    "openai",
		"gemini":    "gemini",
		"google":    "gemini",
		"ollama":    "ollama",
		"lmstudio":  "ollama",
	}
	for provider, want := range tests {
		c, err := New(provider, "m")
		if err != nil {
			t.Fatalf("New(%q): %v", provider, err)
		}
		if c.Name() != want {
			t.Errorf("New(%q).Name() = %q, want %q", provider, c.Name(), want)
		}
	}
}

func TestNew_GeminiFallsBackToGoogleKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	c, err := New("gemini", "gemini-2.0-flash")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.(*Gemini).apiKey != "g-key" {
		t.Errorf("apiKey = %q, want g-key", c.(*Gemini).apiKey)
	}
}

func TestOllamaEndpoint(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1/chat/completions"},
		{"http://localhost:11434/", "http://localhost:11434/v1/chat/completions"},
		{"http://box:1234/v1", "http://box:1234/v1/chat/completions"},
		{"http://box:1234/v1/chat/completions", "http://box:1234/v1/chat/completions"},
	}
	for _, tt := range tests {
		if got := ollamaEndpoint(tt.host); got != tt.want {
			t.Errorf("ollamaEndpoint(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestNewOllama_Env(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434/v1")
	t.Setenv("RELNOTES_OLLAMA_API_KEY", "")
	c, err := NewOllama("llama3")
	if err != nil {
		t.Fatalf("NewOllama: %v", err)
	}
	if c.url != "http://gpu-box:11434/v1/chat/completions" {
		t.Errorf("url = %q", c.url)
	}
	if c.apiKey != "" {
		t.Errorf("apiKey = %q, want empty", c.apiKey)
	}
}

func TestCompletionRequest_MaxTokens(t *testing.T) {
	if got := (CompletionRequest{}).maxTokens(); got != defaultMaxTokens {
		t.Errorf("zero MaxTokens = %d, want %d", got, defaultMaxTokens)
	}
	if got := (CompletionRequest{MaxTokens: 10}).maxTokens(); got != 10 {
		t.Errorf("MaxTokens 10 = %d", got)
	}
}
