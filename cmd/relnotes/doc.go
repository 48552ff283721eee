// Relnotes lists the commits between two references of a GitHub repository
// and drafts release notes for them with an LLM provider.
//
// References may be full commit SHAs, SHA prefixes or tag names.
//
// Usage:
//
//	relnotes list-commits --owner acme --repo widgets --from v1.2.0 --to v1.3.0
//	relnotes list-commits -f 1a2b3c -t main-sha --format json --out range.json
//	relnotes generate-release-notes -f v1.2.0 -t v1.3.0 --model gpt-4o-mini
//
// GH_PAT (or GITHUB_TOKEN) must hold a GitHub personal access token. A .env
// file in the working directory is loaded at startup.
package main
