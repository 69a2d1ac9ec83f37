package languages

import "strings"

// PythonQuery is the Tree-Sitter query for finding t("ns.key") and
// i18n.t("ns.key") patterns
const PythonQuery = `
(call
  function: [
    (identifier)
    (attribute)
  ] @fn
  arguments: (argument_list
    .
    (string) @key
  )
)
`

// ExtractKeysFromPython extracts key literals from Python AST matches.
// String prefixes (r, u, b) are dropped; f-strings are dynamic and skipped.
func ExtractKeysFromPython(matches []map[string]string, callees map[string]bool) []string {
	return collectKeys(matches, callees, unquotePython)
}

func unquotePython(raw string) (string, bool) {
	i := strings.IndexAny(raw, `"'`)
	if i < 0 {
		return "", false
	}
	if strings.ContainsAny(raw[:i], "fF") {
		return "", false
	}
	s := raw[i:]
	for _, q := range []string{`"""`, `'''`} {
		if len(s) >= 6 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[3 : len(s)-3], true
		}
	}
	return trimQuotes(s), true
}
