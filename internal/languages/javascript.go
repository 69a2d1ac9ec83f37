package languages

import "strings"

// JavaScriptQuery is the Tree-Sitter query for finding t('ns.key') patterns.
// It is shared by the JavaScript, TypeScript and TSX grammars and matches the
// first argument of plain calls (t(...)) and member calls (i18n.t(...)).
// Note: We don't use predicates here, filtering is done in ExtractKeysFromJS
const JavaScriptQuery = `
(call_expression
  function: [
    (identifier)
    (member_expression)
  ] @fn
  arguments: (arguments
    .
    [
      (string)
      (template_string)
    ] @key
  )
)
`

// ExtractKeysFromJS extracts key literals from JavaScript/TypeScript AST matches.
// Template strings with substitutions are dynamic and skipped.
func ExtractKeysFromJS(matches []map[string]string, callees map[string]bool) []string {
	return collectKeys(matches, callees, func(raw string) (string, bool) {
		if strings.HasPrefix(raw, "`") && strings.Contains(raw, "${") {
			return "", false
		}
		return trimQuotes(raw), true
	})
}
