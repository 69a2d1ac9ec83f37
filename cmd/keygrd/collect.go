package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/config"
	"github.com/jenian/keygrd/internal/extract"
	"github.com/jenian/keygrd/internal/logging"
	"github.com/jenian/keygrd/internal/parser"
	"github.com/jenian/keygrd/internal/scanner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// collectUsages finds every key reference under the namespace in the
// configured source, one file at a time. Paths in the usages are relative
// to root.
func collectUsages(cfg *config.Config, root string) ([]analyzer.KeyUsage, error) {
	fileScanner := scanner.NewScanner()
	fileScanner.SetScanRoot(root)
	if err := fileScanner.SetIncludeGlobs(cfg.Include); err != nil {
		return nil, err
	}
	if err := fileScanner.SetExcludeGlobs(cfg.Exclude); err != nil {
		return nil, err
	}
	if len(cfg.Ignores.Folders) > 0 {
		fileScanner.AddExcludeDirs(cfg.Ignores.Folders)
	}

	source := cfg.Source
	if !filepath.IsAbs(source) {
		source = filepath.Join(root, source)
	}
	files, err := fileScanner.Scan(source)
	if err != nil {
		return nil, err
	}
	if logging.GetLevel().Enabled(zapcore.DebugLevel) {
		logging.Debug(reportFileCounts(files), zap.String("source", source))
	}

	var tsParser *parser.Parser
	if cfg.Extractor == config.ExtractorAST {
		tsParser = parser.NewParser(cfg.Namespace, cfg.Functions)
	}

	var allUsages []analyzer.KeyUsage
	for _, f := range files {
		var usages []analyzer.KeyUsage
		if tsParser != nil && f.Language.HasGrammar() {
			usages, err = tsParser.ParseFile(f.Path, string(f.Language), root)
			if err != nil {
				// Log error but continue
				logging.Warn("failed to parse", zap.String("file", f.Path), zap.Error(err))
				continue
			}
		} else {
			if tsParser != nil {
				logging.Debug("no grammar, matching text", zap.String("file", f.Path), zap.String("language", string(f.Language)))
			}
			usages, err = extractUsages(f.Path, root, cfg)
			if err != nil {
				return nil, err
			}
		}

		// Mark usages from ignored folders
		if f.InIgnoredPath {
			for i := range usages {
				usages[i].InIgnoredPath = true
			}
		}
		allUsages = append(allUsages, usages...)
	}
	return allUsages, nil
}

// extractUsages runs the textual extractor over one file
func extractUsages(path, root string, cfg *config.Config) ([]analyzer.KeyUsage, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	rel := filepath.ToSlash(path)
	if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
		rel = filepath.ToSlash(r)
	}

	found := extract.ExtractUsages(string(content), cfg.Namespace, cfg.Functions...)
	usages := make([]analyzer.KeyUsage, 0, len(found))
	for _, u := range found {
		usages = append(usages, analyzer.KeyUsage{
			Key:         u.Key,
			File:        rel,
			Line:        u.Line,
			CodeSnippet: u.Snippet,
		})
	}
	return usages, nil
}

// reportFileCounts generates a summary of file counts by language
func reportFileCounts(files []scanner.FileInfo) string {
	langCounts := make(map[scanner.Language]int)
	for _, file := range files {
		langCounts[file.Language]++
	}

	var reportParts []string
	langOrder := []scanner.Language{
		scanner.LanguageTSX, scanner.LanguageTypeScript, scanner.LanguageJavaScript,
		scanner.LanguageMarkup, scanner.LanguageGo, scanner.LanguagePython,
		scanner.LanguageRust, scanner.LanguageJava, scanner.LanguageUnknown,
	}
	for _, lang := range langOrder {
		if count := langCounts[lang]; count > 0 {
			reportParts = append(reportParts, fmt.Sprintf("%s: %d", lang, count))
		}
	}

	if len(reportParts) > 0 {
		return fmt.Sprintf("found %d source files (%s)", len(files), strings.Join(reportParts, ", "))
	}
	return "found no source files"
}
