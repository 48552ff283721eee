// Package cache keeps generated release notes on disk so that asking again
// for the same range, provider, model and prompt does not call the provider.
//
// Each entry is a JSON file named by a SHA-256 of its [Key]. Entries older
// than the configured TTL are treated as misses and removed on lookup.
package cache
