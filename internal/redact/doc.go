// Package redact removes secrets from the release-notes prompt body before it
// is written to disk or sent to a completion provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens and provider-specific tokens (Anthropic, OpenAI, GitHub, Slack).
//
// Diff sections for files whose paths match configured glob patterns are
// dropped entirely and replaced with a single [REDACTED] line.
package redact
