package providers

import (
	"context"
	"fmt"
)

// defaultMaxTokens caps the reply when the caller leaves MaxTokens at zero.
const defaultMaxTokens = 4096

// CompletionRequest carries the two prompts of a release-note request.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

func (r CompletionRequest) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// CompletionResponse contains the generated text. Content is empty when the
// provider answered without any text field. TokensUsed is whatever usage
// count the provider reported, zero when it reported none.
type CompletionResponse struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction interface.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	Name() string
}

// New creates a provider by name.
func New(provider, model string) (Completer, error) {
	if model == "" {
		return nil, fmt.Errorf("model name is not set (use --model or RELNOTES_MODEL)")
	}
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
