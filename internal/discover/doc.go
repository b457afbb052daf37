// Package discover enumerates the reviewable files under a root directory.
//
// Traversal is depth-first in lexicographic order, so two walks over an
// unchanged tree yield files in the same order — the property the final
// report's ordering rests on. Hidden paths and paths matching the ignore
// set are excluded; ignored directories are pruned without being descended
// into. Unreadable directories are collected as warnings rather than
// aborting the walk.
package discover
