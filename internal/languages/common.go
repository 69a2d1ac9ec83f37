package languages

import "strings"

// LanguageInfo contains query and extraction function for a language
type LanguageInfo struct {
	Query string
	// Extractor returns the key literals of matches whose callee is one of
	// callees. Each match maps capture names (fn, key) to source text.
	Extractor func(matches []map[string]string, callees map[string]bool) []string
}

// GetLanguageInfo returns the query and extractor for a given language
func GetLanguageInfo(lang string) *LanguageInfo {
	switch lang {
	case "javascript", "typescript", "tsx":
		return &LanguageInfo{
			Query:     JavaScriptQuery,
			Extractor: ExtractKeysFromJS,
		}
	case "go":
		return &LanguageInfo{
			Query:     GoQuery,
			Extractor: ExtractKeysFromGo,
		}
	case "python":
		return &LanguageInfo{
			Query:     PythonQuery,
			Extractor: ExtractKeysFromPython,
		}
	case "rust":
		return &LanguageInfo{
			Query:     RustQuery,
			Extractor: ExtractKeysFromRust,
		}
	case "java":
		return &LanguageInfo{
			Query:     JavaQuery,
			Extractor: ExtractKeysFromJava,
		}
	default:
		return nil
	}
}

// isCallee reports whether the callee text fn names one of callees, either
// as written (i18n.t) or by its last segment (t)
func isCallee(fn string, callees map[string]bool) bool {
	if fn == "" {
		return false
	}
	if callees[fn] {
		return true
	}
	if i := strings.LastIndexAny(fn, ".:"); i >= 0 {
		return callees[fn[i+1:]]
	}
	return false
}

// collectKeys runs unquote over the key capture of every match whose callee
// is accepted and returns the distinct results in match order. unquote
// reports false for literals that are not static keys.
func collectKeys(matches []map[string]string, callees map[string]bool, unquote func(string) (string, bool)) []string {
	var keys []string
	seen := make(map[string]bool)

	for _, match := range matches {
		if !isCallee(strings.TrimSpace(match["fn"]), callees) {
			continue
		}
		raw, ok := match["key"]
		if !ok || raw == "" {
			continue
		}
		key, ok := unquote(raw)
		if !ok || key == "" || seen[key] {
			continue
		}
		keys = append(keys, key)
		seen[key] = true
	}
	return keys
}

// trimQuotes removes one pair of matching quotes
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '`' && s[len(s)-1] == '`') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
