// Package config loads and validates the pipeline configuration. Values are
// merged from defaults, an optional loupe.yaml file, LOUPE_* environment
// variables, and CLI flag overrides, in that order of precedence.
package config
