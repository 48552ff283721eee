// Package notes turns the display lines of a commit range into release notes
// by sending them, together with a system prompt, to a completion provider.
//
// The raw range text may be saved to disk first; the prompt itself may be
// redacted before it is sent.
// Responses are cached by provider, model, system prompt and body.
package notes
