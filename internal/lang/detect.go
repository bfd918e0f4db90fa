// Package lang guesses and resolves the highlighting grammar for a code buffer.
//
// Tags are chroma lexer names ("python", "cpp", ...). The empty tag means unknown.
package lang

import (
	"regexp"
	"strings"
)

const (
	// prefixLimit bounds the character window the cascade inspects.
	prefixLimit = 2000
	// markdownLines is the line window of the markdown rule.
	markdownLines = 6
)

// Rule pairs a pattern with the tag it yields.
// A rule with Lines > 0 is matched against the first Lines lines of the
// original text instead of the lowercased character prefix.
type Rule struct {
	Pattern *regexp.Regexp
	Tag     string
	Lines   int
}

// rules is evaluated top to bottom; first match wins.
var rules = []Rule{
	{Pattern: regexp.MustCompile(`^#!/.*\b(node|bash|env)`), Tag: "bash"},
	{Pattern: regexp.MustCompile(`^<!doctype html\b|<html[\s>]`), Tag: "html"},
	{Pattern: regexp.MustCompile(`\b(function|const|let|=>|console\.log|var|module\.exports)\b`), Tag: "javascript"},
	{Pattern: regexp.MustCompile(`\binterface\s+\w+|\btype\s+\w+|:\s*string\b|:\s*number\b`), Tag: "typescript"},
	{Pattern: regexp.MustCompile(`\b(def\s+\w+\(|from\s+\w+|import\s+\w+|print\(|self\b)`), Tag: "python"},
	{Pattern: regexp.MustCompile(`\b(public\s+class|System\.out|println|package\s+[a-z0-9_.]+)\b`), Tag: "java"},
	{Pattern: regexp.MustCompile(`\b#include\s+<|int\s+main\s*\(|std::\w+`), Tag: "cpp"},
	{Pattern: regexp.MustCompile(`\busing\s+system;|namespace\s+\w+;|Console\.WriteLine`), Tag: "csharp"},
	{Pattern: regexp.MustCompile(`\bfunc\s+\w+\(|package\s+\w+;`), Tag: "go"},
	{Pattern: regexp.MustCompile(`\b<\?php|echo\s+['"]`), Tag: "php"},
	{Pattern: regexp.MustCompile(`^\s*[{\[]`), Tag: "json"},
	{Pattern: regexp.MustCompile(`\bselect\s+.+from\b|insert\s+into\b|create\s+table\b`), Tag: "sql"},
	{Pattern: regexp.MustCompile(`^#\s+\w+|\[(.*?)\]\((.*?)\)|^---\s*$`), Tag: "markdown", Lines: markdownLines},
}

// Rules returns a copy of the detection table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Detect returns the best-guess tag for text, or "" when nothing matches.
// It is a best-effort classifier; false positives are expected.
func Detect(text string) string {
	return detectWith(rules, text)
}

func detectWith(table []Rule, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	prefix := strings.ToLower(headRunes(text, prefixLimit))

	tag := ""
	for _, r := range table {
		window := prefix
		if r.Lines > 0 {
			window = headLines(text, r.Lines)
		}
		if r.Pattern.MatchString(window) {
			tag = r.Tag
			break
		}
	}
	return tag
}

// Effective returns explicit when set, otherwise the detected tag for text.
func Effective(explicit, text string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return Detect(text)
}

func headRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func headLines(s string, n int) string {
	parts := strings.SplitN(s, "\n", n+1)
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, "\n")
}
