// Package output renders review reports for display or machine
// consumption.
//
// Three formats are supported:
//   - markdown — the report document format, one block per file (default)
//   - text     — human-readable terminal output with a summary table
//   - json     — full structured report
//
// Rendering is deterministic: the same report value always produces the
// same bytes, and file blocks appear in discovery order.
package output
