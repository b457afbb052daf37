// Package ignore compiles gitignore-style patterns into a matcher over
// slash-separated relative paths.
//
// Matching is union semantics: a path is ignored if at least one rule
// matches. A pattern ending in "/" excludes a directory recursively; any
// other literal pattern matches paths equal to it or sharing it as a
// literal prefix. Patterns containing wildcards are matched with
// [path.Match] against the full relative path and its base name. Pattern
// negation is not supported.
//
// Hidden-path filtering ([Hidden]) is a separate, unconditional rule that
// applies regardless of the compiled pattern set.
package ignore
