package parser

import (
	"fmt"
	"unsafe"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammars maps scanner language names to the grammars compiled into the
// binary. JSX in .tsx files only parses with the TSX grammar.
var grammars = map[string]func() unsafe.Pointer{
	"javascript": tree_sitter_javascript.Language,
	"typescript": tree_sitter_typescript.LanguageTypescript,
	"tsx":        tree_sitter_typescript.LanguageTSX,
	"go":         tree_sitter_go.Language,
	"python":     tree_sitter_python.Language,
	"rust":       tree_sitter_rust.Language,
	"java":       tree_sitter_java.Language,
}

// LanguageLoader provides the grammar for a scanner language name
type LanguageLoader interface {
	Load(lang string) (*sitter.Language, error)
}

// BundledLoader loads the grammars compiled into the binary
type BundledLoader struct{}

// Load returns the grammar for lang, or an error for a language without one
func (BundledLoader) Load(lang string) (*sitter.Language, error) {
	grammar, ok := grammars[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	ptr := grammar()
	if ptr == nil {
		return nil, fmt.Errorf("failed to load %s grammar", lang)
	}
	return sitter.NewLanguage(ptr), nil
}

var languageLoader LanguageLoader = BundledLoader{}

// SetLanguageLoader replaces the grammar source, e.g. in tests
func SetLanguageLoader(loader LanguageLoader) {
	languageLoader = loader
}

func loadLanguage(lang string) (*sitter.Language, error) {
	return languageLoader.Load(lang)
}
