package languages

// GoQuery is the Tree-Sitter query for finding T("ns.key") and i18n.T("ns.key")
// patterns, with interpreted or raw string literals
const GoQuery = `
(call_expression
  function: [
    (identifier)
    (selector_expression)
  ] @fn
  arguments: (argument_list
    .
    [
      (interpreted_string_literal)
      (raw_string_literal)
    ] @key
  )
)
`

// ExtractKeysFromGo extracts key literals from Go AST matches
func ExtractKeysFromGo(matches []map[string]string, callees map[string]bool) []string {
	return collectKeys(matches, callees, func(raw string) (string, bool) {
		return trimQuotes(raw), true
	})
}
