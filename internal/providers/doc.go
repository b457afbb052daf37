// Package providers abstracts the text-generation backends that power
// generative review.
//
// Two backends are supported: Ollama/LM Studio through the
// OpenAI-compatible chat completions API (the local-first default) and
// Anthropic through the official SDK. Rate-limit and 5xx responses from the
// HTTP backend are retried with exponential backoff; authentication errors
// are surfaced immediately and can be detected with [IsAuthError].
package providers
