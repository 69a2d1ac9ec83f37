package languages

// RustQuery is the Tree-Sitter query for finding t!("ns.key") macro calls and
// t("ns.key") / i18n::t("ns.key") function calls
const RustQuery = `
[
  (macro_invocation
    macro: [
      (identifier)
      (scoped_identifier)
    ] @fn
    (token_tree
      .
      (string_literal) @key
    )
  )
  (call_expression
    function: [
      (identifier)
      (scoped_identifier)
      (field_expression)
    ] @fn
    arguments: (arguments
      .
      (string_literal) @key
    )
  )
]
`

// ExtractKeysFromRust extracts key literals from Rust AST matches
func ExtractKeysFromRust(matches []map[string]string, callees map[string]bool) []string {
	return collectKeys(matches, callees, func(raw string) (string, bool) {
		return trimQuotes(raw), true
	})
}
