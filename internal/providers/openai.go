package providers

import (
	"context"
	"net/http"
	"os"
	"strings"
)

const (
	defaultOpenAIURL  = "https://api.openai.com/v1/chat/completions"
	defaultOllamaHost = "http://localhost:11434"
)

// ChatCompletions talks to any OpenAI-compatible /chat/completions endpoint.
// OpenAI itself, Ollama and LM Studio all share it.
type ChatCompletions struct {
	name   string
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewOpenAI reads OPENAI_API_KEY. RELNOTES_OPENAI_BASE_URL replaces the
// endpoint for compatible gateways.
func NewOpenAI(model string) (*ChatCompletions, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	url := os.Getenv("RELNOTES_OPENAI_BASE_URL")
	if url == "" {
		url = defaultOpenAIURL
	}
	return &ChatCompletions{name: "openai", apiKey: key, model: model, url: url}, nil
}

// NewOllama targets OLLAMA_HOST (default localhost:11434). A key is only sent
// when RELNOTES_OLLAMA_API_KEY is set.
func NewOllama(model string) (*ChatCompletions, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = defaultOllamaHost
	}
	return &ChatCompletions{
		name:   "ollama",
		apiKey: os.Getenv("RELNOTES_OLLAMA_API_KEY"),
		model:  model,
		url:    ollamaEndpoint(host),
	}, nil
}

// ollamaEndpoint accepts a bare host, a /v1 base, or the full endpoint.
func ollamaEndpoint(host string) string {
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/v1/chat/completions")
	host = strings.TrimSuffix(host, "/v1")
	return host + "/v1/chat/completions"
}

func (c *ChatCompletions) Name() string { return c.name }

func (c *ChatCompletions) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	in := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens: req.maxTokens(),
	}
	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
	}

	var out chatResponse
	if err := post(ctx, c.client, c.url, header, in, &out); err != nil {
		return CompletionResponse{}, err
	}
	resp := CompletionResponse{TokensUsed: out.Usage.TotalTokens}
	if len(out.Choices) > 0 {
		resp.Content = out.Choices[0].Message.Content
	}
	return resp, nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}
