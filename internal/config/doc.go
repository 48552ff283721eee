// Package config loads and merges relnotes configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (RELNOTES_PROVIDER, RELNOTES_MODEL, RELNOTES_SYSTEM_PROMPT, ...)
//  3. Config file ($XDG_CONFIG_HOME/relnotes/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
