// Package cli wires together the Cobra command tree for the loupe binary.
//
// It defines the root command and all subcommands (review, config, cache,
// languages, version), binds flags, reads configuration, assembles the
// discovery walker, reviewer registry, and review engine, and returns
// deterministic exit codes for CI gating.
package cli
