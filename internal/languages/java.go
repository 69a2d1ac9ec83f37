package languages

// JavaQuery is the Tree-Sitter query for finding t("ns.key") and
// messages.t("ns.key") method invocations
const JavaQuery = `
(method_invocation
  name: (identifier) @fn
  arguments: (argument_list
    .
    (string_literal) @key
  )
)
`

// ExtractKeysFromJava extracts key literals from Java AST matches
func ExtractKeysFromJava(matches []map[string]string, callees map[string]bool) []string {
	return collectKeys(matches, callees, func(raw string) (string, bool) {
		return trimQuotes(raw), true
	})
}
