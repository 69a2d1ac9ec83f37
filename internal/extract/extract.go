// Package extract finds translation keys referenced under one namespace by
// matching call sites such as t('quizOverview.title') in raw source text.
//
// Matching is textual. It only sees keys written as one literal string:
// keys built by concatenation or interpolation are not reported, and call
// shapes inside comments or unrelated strings are reported as if real.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultFunctions are the call tokens matched when none are configured
var DefaultFunctions = []string{"t"}

// Usage is one key reference found in a text
type Usage struct {
	Key     string // Suffix after "<namespace>."
	Line    int    // 1-based line of the opening quote
	Snippet string // Trimmed source line
}

// Pattern builds the expression matching `<fn>(<q><namespace>.<key><q>`
// for any fn in funcs. RE2 has no backreferences, so each quote style gets
// its own alternative and capture group.
func Pattern(namespace string, funcs []string) *regexp.Regexp {
	if len(funcs) == 0 {
		funcs = DefaultFunctions
	}
	calls := make([]string, 0, len(funcs))
	for _, fn := range funcs {
		calls = append(calls, regexp.QuoteMeta(fn))
	}
	ns := regexp.QuoteMeta(namespace) + `\.`

	var b strings.Builder
	b.WriteString(`(?:^|[^A-Za-z0-9_])(?:`)
	b.WriteString(strings.Join(calls, "|"))
	b.WriteString(`)\(\s*(?:'`)
	b.WriteString(ns + `([^']+)'|"`)
	b.WriteString(ns + `([^"]+)"|` + "`")
	b.WriteString(ns + "([^`]+)`)")
	return regexp.MustCompile(b.String())
}

// Extract returns the distinct key suffixes referenced under namespace,
// sorted ascending.
func Extract(text, namespace string, funcs ...string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, u := range ExtractUsages(text, namespace, funcs...) {
		if !seen[u.Key] {
			seen[u.Key] = true
			keys = append(keys, u.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// ExtractUsages returns every key reference in text order
func ExtractUsages(text, namespace string, funcs ...string) []Usage {
	re := Pattern(namespace, funcs)
	var usages []Usage
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := -1, -1
		for g := 1; g <= 3; g++ {
			if loc[2*g] >= 0 {
				start, end = loc[2*g], loc[2*g+1]
				break
			}
		}
		if start < 0 {
			continue
		}
		key := text[start:end]
		// template literal with a substitution
		if strings.Contains(key, "${") {
			continue
		}
		line, snippet := lineAt(text, start)
		usages = append(usages, Usage{Key: key, Line: line, Snippet: snippet})
	}
	return usages
}

// lineAt returns the 1-based line number and trimmed content of the line
// holding offset.
func lineAt(text string, offset int) (int, string) {
	line := strings.Count(text[:offset], "\n") + 1
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += offset
	}
	return line, strings.TrimSpace(text[lineStart:lineEnd])
}
