// Package redact strips secret-looking material from file content before
// it is handed to a generative review backend. Detection is heuristic
// (regex shapes for common key and token formats); an additional path
// policy replaces entire files such as .env with a placeholder.
package redact
