package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/languages"
	"github.com/jenian/keygrd/internal/logging"
	sitter "github.com/tree-sitter/go-tree-sitter"
	"go.uber.org/zap"
)

// Parser handles Tree-Sitter parsing of source files
type Parser struct {
	languages map[string]*sitter.Language
	mu        sync.RWMutex
	namespace string
	callees   map[string]bool
}

// NewParser creates a new parser instance that reports keys under namespace
// passed to any of the given call tokens
func NewParser(namespace string, callees []string) *Parser {
	p := &Parser{
		languages: make(map[string]*sitter.Language),
		namespace: namespace,
	}
	p.SetCallees(callees)
	return p
}

// SetCallees replaces the call tokens whose first argument is a key
func (p *Parser) SetCallees(callees []string) {
	p.callees = make(map[string]bool, len(callees))
	for _, c := range callees {
		p.callees[c] = true
	}
}

// getLanguage returns a language grammar for the given language, loading it if needed
func (p *Parser) getLanguage(lang string) (*sitter.Language, error) {
	p.mu.RLock()
	if language, ok := p.languages[lang]; ok {
		p.mu.RUnlock()
		return language, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if language, ok := p.languages[lang]; ok {
		return language, nil
	}

	language, err := loadLanguage(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load language %s: %w", lang, err)
	}

	p.languages[lang] = language
	return language, nil
}

// ParseFile parses a single file and extracts translation key usages
// scanRoot is the root directory being scanned, used for calculating relative paths
func (p *Parser) ParseFile(filePath string, lang string, scanRoot string) ([]analyzer.KeyUsage, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	language, err := p.getLanguage(lang)
	if err != nil {
		return nil, err
	}

	langInfo := languages.GetLanguageInfo(lang)
	if langInfo == nil {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	tsParser := sitter.NewParser()
	defer tsParser.Close()
	if err := tsParser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	tree := tsParser.Parse(content, nil)
	if tree == nil {
		logging.Warn("parse returned no tree", zap.String("file", filePath), zap.String("language", lang))
		return []analyzer.KeyUsage{}, nil
	}
	defer tree.Close()
	rootNode := tree.RootNode()
	if rootNode.HasError() {
		logging.Debug("source has syntax errors, results may be partial", zap.String("file", filePath))
	}

	query, queryErr := sitter.NewQuery(language, strings.TrimSpace(langInfo.Query))
	if queryErr != nil {
		// A grammar that rejects the query skips the file; the scan continues
		logging.Warn("query creation failed",
			zap.String("file", filePath),
			zap.String("language", lang),
			zap.Error(queryErr),
		)
		return []analyzer.KeyUsage{}, nil
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	matches := cursor.Matches(query, rootNode, content)
	captureNames := query.CaptureNames()

	relPath := relativePath(filePath, scanRoot)
	prefix := p.namespace + "."

	var usages []analyzer.KeyUsage
	seen := make(map[string]bool)

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		matchMap := make(map[string]string)
		var keyNode *sitter.Node
		for _, capture := range match.Captures {
			if int(capture.Index) >= len(captureNames) {
				continue
			}
			name := captureNames[capture.Index]
			node := capture.Node
			matchMap[name] = string(content[node.StartByte():node.EndByte()])
			if name == "key" {
				keyNode = &node
			}
		}
		if keyNode == nil {
			continue
		}

		for _, literal := range langInfo.Extractor([]map[string]string{matchMap}, p.callees) {
			if !strings.HasPrefix(literal, prefix) || len(literal) == len(prefix) {
				continue
			}
			key := strings.TrimPrefix(literal, prefix)
			line := int(keyNode.StartPosition().Row) + 1

			usageKey := fmt.Sprintf("%s:%s:%d", relPath, key, line)
			if seen[usageKey] {
				continue
			}
			seen[usageKey] = true

			logging.Debug("key match",
				zap.String("file", relPath),
				zap.Int("line", line),
				zap.String("callee", matchMap["fn"]),
				zap.String("key", key),
			)
			usages = append(usages, analyzer.KeyUsage{
				Key:         key,
				File:        relPath,
				Line:        line,
				CodeSnippet: lineText(content, int(keyNode.StartPosition().Row)),
			})
		}
	}

	return usages, nil
}

// relativePath returns filePath relative to scanRoot when possible
func relativePath(filePath, scanRoot string) string {
	if scanRoot == "" {
		return filepath.ToSlash(filePath)
	}
	absScanRoot, err1 := filepath.Abs(scanRoot)
	absFilePath, err2 := filepath.Abs(filePath)
	if err1 != nil || err2 != nil {
		return filepath.ToSlash(filePath)
	}
	rel, err := filepath.Rel(absScanRoot, absFilePath)
	if err != nil || rel == "" || rel == "." {
		return filepath.ToSlash(filePath)
	}
	return filepath.ToSlash(rel)
}

// lineText returns the trimmed text of the 0-based row
func lineText(content []byte, row int) string {
	lineStart := 0
	for i := 0; i < len(content) && row > 0; i++ {
		if content[i] == '\n' {
			row--
			lineStart = i + 1
		}
	}
	lineEnd := lineStart
	for lineEnd < len(content) && content[lineEnd] != '\n' {
		lineEnd++
	}
	return strings.TrimSpace(string(content[lineStart:lineEnd]))
}
