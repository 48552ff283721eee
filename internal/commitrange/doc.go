// Package commitrange turns two references into an inclusive slice of a
// repository's newest-first commit history plus the compare diff between the
// slice's endpoints.
//
// The whole history is paged into memory before searching unless
// [Extractor.StopWhenFound] is set, in which case paging ends as soon as both
// references have been located. Because the first (newest) match wins, both
// modes locate the same commits. A SHA prefix that matches several commits
// silently selects the newest; such references are listed in
// [Result.Ambiguous].
//
// Diff failures never discard the commit list: they are kept on the
// [Result] and rendered as a diagnostic line by [Result.Lines].
package commitrange
