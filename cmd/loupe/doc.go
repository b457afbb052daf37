// Loupe is a CLI for automated code review of whole directory trees.
//
// It walks a root directory, filters ignored and hidden entries, classifies
// each remaining file by extension, and reviews it with a language-appropriate
// reviewer: an LLM provider, an external static-analysis tool, or a fallback.
// One file's failure never aborts the run; every discovered file gets exactly
// one entry in the final report.
//
// Usage:
//
//	loupe review .                    # review the current tree
//	loupe review src --format json    # machine-readable report
//	loupe review . --mode static      # use configured linters instead of LLMs
//	loupe config init                 # write a default config file
//	loupe cache clear                 # drop cached review feedback
//
// See https://github.com/aliGhadyani/loupe for full documentation.
package main
