package review

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict, expert code reviewer. You are given one complete source file and a set of review rules for its language.

Rules:
1. Review only the file provided. Do not speculate about code you cannot see.
2. Evaluate the file against the given rules first, then look for bugs, security issues, and correctness problems beyond them.
3. Be concise and actionable. Reference line numbers where helpful.
4. If the file has no issues, say so in one sentence.

Respond with plain text feedback. No preamble.`

// SystemPrompt returns the system prompt for generative review.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt constructs the per-file user prompt embedding the
// language's rule strings and the file content.
func BuildUserPrompt(lang string, rules []string, content string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Review the following %s code based on these rules:\n\n", lang)
	if len(rules) == 0 {
		b.WriteString("- " + NoRulesFeedback + "\n")
	}
	for _, rule := range rules {
		fmt.Fprintf(&b, "- %s\n", rule)
	}

	b.WriteString("\nCode:\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}
