package main

import (
	"testing"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/scanner"
	"github.com/stretchr/testify/assert"
)

func TestRequiredKeys(t *testing.T) {
	usages := []analyzer.KeyUsage{
		{Key: "title", Line: 8},
		{Key: "duration", Line: 10},
		{Key: "title", Line: 12},
		{Key: "storyOnly", Line: 3, InIgnoredPath: true},
	}
	assert.Equal(t, []string{"duration", "title"}, requiredKeys(usages))
	assert.Equal(t, []string{}, requiredKeys(nil))
}

func TestReportFileCounts(t *testing.T) {
	files := []scanner.FileInfo{
		{Path: "a.tsx", Language: scanner.LanguageTSX},
		{Path: "b.tsx", Language: scanner.LanguageTSX},
		{Path: "c.vue", Language: scanner.LanguageMarkup},
		{Path: "d.go", Language: scanner.LanguageGo},
	}
	assert.Equal(t, "found 4 source files (tsx: 2, markup: 1, go: 1)", reportFileCounts(files))
	assert.Equal(t, "found no source files", reportFileCounts(nil))
}
