package review

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aliGhadyani/loupe/internal/language"
)

// NoRulesFeedback is the fixed feedback for files no reviewer has rules for.
const NoRulesFeedback = "No specific rules available."

// Pack maps language tags to review rule strings.
type Pack map[language.Tag][]string

// rulesEntry is the on-disk shape: {"Python": {"rules": ["..."]}}.
type rulesEntry struct {
	Rules []string `json:"rules"`
}

// LoadPack loads a rules pack from a JSON file. An empty path returns the
// built-in defaults.
func LoadPack(path string) (Pack, error) {
	if path == "" {
		return DefaultPack(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var raw map[string]rulesEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	pack := make(Pack, len(raw))
	for tag, entry := range raw {
		pack[language.Tag(tag)] = entry.Rules
	}
	return pack, nil
}

// For returns the rule strings for a tag, or nil when none are defined.
func (p Pack) For(tag language.Tag) []string {
	return p[tag]
}

// DefaultPack returns the built-in per-language review rules.
func DefaultPack() Pack {
	return Pack{
		language.TagPython: {
			"Follow PEP8.",
			"Avoid print() in production code.",
			"Ensure proper exception handling.",
			"Check for security vulnerabilities.",
		},
		language.TagJavaScript: {
			"Avoid var; use const or let.",
			"Handle async errors.",
			"Prevent callback hell.",
		},
		language.TagTypeScript: {
			"Avoid any; keep types explicit.",
			"Handle async errors.",
			"Prefer readonly and const assertions where applicable.",
		},
		language.TagJava: {
			"Follow CamelCase conventions.",
			"Use final where applicable.",
			"Ensure proper resource management.",
			"Avoid memory leaks.",
		},
		language.TagC: {
			"Check for uninitialized variables.",
			"Check for buffer overflows and memory leaks.",
			"Check for missing break statements.",
		},
		language.TagCPP: {
			"Ensure const correctness.",
			"Detect redundant object creation.",
			"Enforce RAII principles.",
		},
		language.TagCSharp: {
			"Ensure proper use of using statements.",
			"Detect async void misuse.",
			"Enforce naming conventions.",
		},
		language.TagGo: {
			"Ensure idiomatic error handling.",
			"Check proper use of defer.",
			"Avoid excessive goroutines.",
		},
		language.TagRuby: {
			"Avoid monkey patching.",
			"Detect eval() usage.",
		},
		language.TagPHP: {
			"Ensure strict_types.",
			"Detect SQL injection.",
			"Check for CSRF protection.",
		},
		language.TagRust: {
			"Follow ownership and borrowing rules.",
			"Avoid unsafe blocks.",
		},
		language.TagSwift: {
			"Use guard statements.",
			"Avoid force-unwrapping.",
			"Enforce explicit access control.",
		},
		language.TagKotlin: {
			"Prefer val over var.",
			"Avoid !! null assertions.",
		},
		language.TagShell: {
			"Quote variable expansions.",
			"Use set -euo pipefail where appropriate.",
		},
		language.TagSQL: {
			"Optimize queries and ensure proper indexing.",
			"Avoid SQL injection.",
		},
	}
}
