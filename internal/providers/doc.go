// Package providers sends the assembled release-note text to an LLM and
// returns its reply.
//
// Anthropic and Gemini have their own wire formats; OpenAI, Ollama and
// LM Studio share the OpenAI-compatible chat-completions shape. Every
// provider makes exactly one HTTP request per completion, and a failed one
// is returned to the caller as-is.
// 401 and 403 replies are reported as authentication errors (see
// [IsAuthError]); other non-2xx replies as [*StatusError]. A well-formed
// reply that lacks the expected text field yields empty Content.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
