// Package output formats commit ranges and generated release notes for
// display or machine consumption.
//
// Three formats are supported for commit ranges:
//   - text:     the canonical display lines (default)
//   - json:     structured document with resolutions, commits and diff
//   - markdown: changelog-friendly list with the diff in a collapsible block
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*commitrange.Result].
// [WriteResult] handles destination selection and [WriteReleaseNotes] frames
// generated notes with the release-notes banner.
package output
