// Package review contains the core types and orchestration engine of the
// pipeline.
//
// The Engine consumes files from a discovery walker in traversal order,
// classifies each file's language, resolves a Reviewer through the
// Registry, and records exactly one Result per file. Per-file fault
// isolation is the central property: an unreadable file, a failing tool, a
// backend timeout, or a panicking reviewer produces a Failure result for
// that file and nothing else.
//
// Reviewers come in three kinds: Generative (prompts a text-generation
// backend with the language's rules pack and the file content), Static
// (runs an external analysis tool and returns its raw output), and
// Fallback (a fixed no-rules message for languages nothing else claims).
//
// An optional bounded worker pool reviews independent files concurrently;
// results land in indexed slots so the final report keeps discovery order
// regardless of completion order.
package review
