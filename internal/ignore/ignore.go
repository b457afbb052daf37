package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"
)

// ruleKind selects how a single pattern is matched against a path.
type ruleKind int

const (
	// kindPrefix matches a path that equals the pattern or starts with it
	// as a literal prefix. This deliberately over-matches ("build" also
	// ignores "builder.go"); TestMatch_PrefixLooseness pins the behavior.
	kindPrefix ruleKind = iota
	// kindDir matches any path under a directory (pattern ends with "/").
	kindDir
	// kindGlob matches shell-style patterns containing wildcards.
	kindGlob
)

// Rule is a single compiled ignore pattern. Immutable once compiled.
type Rule struct {
	pattern string
	kind    ruleKind
}

// Pattern returns the original pattern string.
func (r Rule) Pattern() string { return r.pattern }

func (r Rule) match(rel string) bool {
	switch r.kind {
	case kindDir:
		return strings.HasPrefix(rel, r.pattern)
	case kindGlob:
		if ok, err := path.Match(r.pattern, rel); err == nil && ok {
			return true
		}
		// Patterns like "*.log" should also match in subdirectories.
		ok, err := path.Match(r.pattern, path.Base(rel))
		return err == nil && ok
	default:
		return rel == r.pattern || strings.HasPrefix(rel, r.pattern)
	}
}

// Set is an ordered collection of rules with union semantics: a path is
// ignored if any rule matches.
type Set struct {
	rules []Rule
}

// Compile turns raw pattern strings into a Set. Empty strings are dropped.
// Patterns use forward slashes regardless of platform.
func Compile(patterns []string) Set {
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch {
		case strings.HasSuffix(p, "/"):
			rules = append(rules, Rule{pattern: p, kind: kindDir})
		case strings.ContainsAny(p, "*?["):
			rules = append(rules, Rule{pattern: p, kind: kindGlob})
		default:
			rules = append(rules, Rule{pattern: p, kind: kindPrefix})
		}
	}
	return Set{rules: rules}
}

// Match reports whether the slash-separated relative path matches any rule.
func (s Set) Match(rel string) bool {
	for _, r := range s.rules {
		if r.match(rel) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled rules.
func (s Set) Len() int { return len(s.rules) }

// Hidden reports whether any segment of the slash-separated relative path
// starts with a dot. The hidden rule applies ahead of pattern matching and
// independently of it.
func Hidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

// ReadPatterns reads ignore patterns from a gitignore-style file, dropping
// blank lines and "#" comments. A missing file yields no patterns and no
// error; the matcher itself only ever sees already-extracted strings.
func ReadPatterns(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return patterns, nil
}
