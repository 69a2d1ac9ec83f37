package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Language represents a source language
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
	LanguageGo         Language = "go"
	LanguagePython     Language = "python"
	LanguageRust       Language = "rust"
	LanguageJava       Language = "java"
	LanguageMarkup     Language = "markup" // Component templates without a grammar, e.g. .vue
	LanguageUnknown    Language = "unknown"
)

// HasGrammar reports whether the AST extractor can parse the language
func (l Language) HasGrammar() bool {
	switch l {
	case LanguageMarkup, LanguageUnknown:
		return false
	default:
		return true
	}
}

// FileInfo contains information about a file to be scanned
type FileInfo struct {
	Path          string
	Language      Language
	InIgnoredPath bool // True if this file is in a folder whose references don't count
}

// Scanner handles source file discovery and filtering
type Scanner struct {
	excludeDirs  map[string]bool // Directory names to exclude (e.g., "node_modules")
	excludePaths []string        // Path patterns whose files are scanned but flagged (e.g., "src/stories", "k8s/*")
	excludeGlobs []glob.Glob
	includeGlobs []glob.Glob
	baseDir      string // Set by SetScanRoot, overrides the scanned path as scanRoot
	scanRoot     string // Root path being scanned (for relative path matching)
}

// NewScanner creates a new scanner with default exclusions
func NewScanner() *Scanner {
	return &Scanner{
		excludeDirs: map[string]bool{
			"node_modules": true,
			"vendor":       true,
			".git":         true,
			"build":        true,
			"dist":         true,
			"bin":          true,
			"out":          true,
			".next":        true,
			".cache":       true,
			"coverage":     true,
		},
	}
}

// compileGlobs compiles path globs; `*` stays inside one path segment and
// `**` crosses segments
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// SetExcludeGlobs sets glob patterns to exclude
func (s *Scanner) SetExcludeGlobs(patterns []string) error {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return err
	}
	s.excludeGlobs = globs
	return nil
}

// SetIncludeGlobs sets glob patterns to include (overrides excludes)
func (s *Scanner) SetIncludeGlobs(patterns []string) error {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return err
	}
	s.includeGlobs = globs
	return nil
}

// AddExcludeDirs marks folders whose references don't count.
// Plain names (e.g. "stories") are skipped wherever they appear; paths
// (e.g. "src/stories") are still scanned but flagged InIgnoredPath.
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		if strings.Contains(dir, "/") || strings.Contains(dir, "\\") {
			s.excludePaths = append(s.excludePaths, dir)
		} else {
			s.excludeDirs[dir] = true
		}
	}
}

// SetScanRoot sets the directory that globs and ignored folder paths are
// relative to. By default it is the scanned directory, or the directory of
// a scanned file.
func (s *Scanner) SetScanRoot(root string) {
	s.baseDir = root
}

// DetectLanguage determines the language from file extension
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".tsx":
		return LanguageTSX
	case ".go":
		return LanguageGo
	case ".py":
		return LanguagePython
	case ".rs":
		return LanguageRust
	case ".java":
		return LanguageJava
	case ".vue", ".svelte", ".html":
		return LanguageMarkup
	default:
		return LanguageUnknown
	}
}

// matchesGlob checks if a path matches any of the globs, either by its
// path relative to the scan root or by its base name
func matchesGlob(relPath string, globs []glob.Glob) bool {
	base := filepath.Base(relPath)
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// shouldInclude checks if a file should be included based on include/exclude globs
func (s *Scanner) shouldInclude(relPath string) bool {
	if len(s.includeGlobs) > 0 {
		return matchesGlob(relPath, s.includeGlobs)
	}
	if len(s.excludeGlobs) > 0 {
		return !matchesGlob(relPath, s.excludeGlobs)
	}
	return true
}

// relPath returns path relative to the scan root with forward slashes
func (s *Scanner) relPath(path string) string {
	if s.scanRoot == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(s.scanRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// isInIgnoredPath reports whether a file lies under one of the ignored
// folder paths. A trailing "/*" is accepted and means the same folder.
func (s *Scanner) isInIgnoredPath(filePath string) bool {
	rel := s.relPath(filePath)
	for _, dir := range s.excludePaths {
		dir = strings.TrimSuffix(filepath.ToSlash(dir), "/*")
		dir = strings.TrimSuffix(dir, "/")
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// Scan returns the files to extract keys from. A file path yields that file
// alone whatever its extension; a directory is walked recursively. Files are
// returned in lexical walk order.
func (s *Scanner) Scan(path string) ([]FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access source %s: %w", path, err)
	}

	s.scanRoot = s.baseDir
	if !info.IsDir() {
		if s.scanRoot == "" {
			s.scanRoot = filepath.Dir(path)
		}
		return []FileInfo{{Path: path, Language: DetectLanguage(path), InIgnoredPath: s.isInIgnoredPath(path)}}, nil
	}
	if s.scanRoot == "" {
		s.scanRoot = path
	}

	var files []FileInfo

	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Named folders are pruned; ignored paths are walked and flagged
		if info.IsDir() {
			if p != path && s.excludeDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel := s.relPath(p)
		if !s.shouldInclude(rel) {
			return nil
		}

		// images, fonts and other non-source files
		lang := DetectLanguage(p)
		if lang == LanguageUnknown {
			return nil
		}

		files = append(files, FileInfo{
			Path:          p,
			Language:      lang,
			InIgnoredPath: s.isInIgnoredPath(p),
		})
		return nil
	})

	return files, err
}
