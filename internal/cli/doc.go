// Package cli wires together the Cobra command tree for the relnotes binary.
//
// It defines the root command and all subcommands (list-commits,
// generate-release-notes, config, models, cache, version), binds flags, reads
// configuration, runs the range extraction and returns deterministic exit
// codes: 0 on success (including a range that could not be located), 2 for
// usage and configuration errors, 3 for rejected or missing credentials and
// 4 for upstream failures.
package cli
