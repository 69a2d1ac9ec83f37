package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func relPaths(t *testing.T, root string, files []FileInfo) []string {
	t.Helper()
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			t.Fatalf("Rel(%s): %v", f.Path, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected Language
	}{
		{"test.js", LanguageJavaScript},
		{"test.jsx", LanguageJavaScript},
		{"test.mjs", LanguageJavaScript},
		{"test.ts", LanguageTypeScript},
		{"test.tsx", LanguageTSX},
		{"Test.TSX", LanguageTSX},
		{"test.go", LanguageGo},
		{"test.py", LanguagePython},
		{"test.rs", LanguageRust},
		{"Test.java", LanguageJava},
		{"Quiz.vue", LanguageMarkup},
		{"test.txt", LanguageUnknown},
		{"test", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := DetectLanguage(tt.path)
			if result != tt.expected {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestLanguage_HasGrammar(t *testing.T) {
	if !LanguageTSX.HasGrammar() || !LanguageGo.HasGrammar() {
		t.Error("tsx and go should have grammars")
	}
	if LanguageMarkup.HasGrammar() || LanguageUnknown.HasGrammar() {
		t.Error("markup and unknown files have no grammar")
	}
}

func TestScanner_ScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"src/pages/QuizPreviewPage.tsx": "t('quizOverview.title')",
		"src/app.js":                    "console.log('test');",
		"src/app.go":                    "package main",
		"src/Quiz.vue":                  "<template></template>",
		"src/readme.txt":                "readme content",
		"src/logo.png":                  "png",
		"node_modules/lib.js":           "module.exports = {};",
	})

	scanner := NewScanner()
	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	expected := []string{"src/Quiz.vue", "src/app.go", "src/app.js", "src/pages/QuizPreviewPage.tsx"}
	got := relPaths(t, tmpDir, files)
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("file %d = %s, want %s", i, got[i], expected[i])
		}
	}
}

func TestScanner_ScanSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"src/features/quiz/pages/QuizPreviewPage.tsx": "t('quizOverview.title')",
		"src/features/quiz/pages/notes.txt":           "t('quizOverview.notes')",
	})

	scanner := NewScanner()
	path := filepath.Join(tmpDir, "src", "features", "quiz", "pages", "QuizPreviewPage.tsx")
	files, err := scanner.Scan(path)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || files[0].Path != path || files[0].Language != LanguageTSX {
		t.Fatalf("unexpected result: %+v", files)
	}

	// an explicitly named file is scanned whatever its extension
	files, err = scanner.Scan(filepath.Join(filepath.Dir(path), "notes.txt"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || files[0].Language != LanguageUnknown {
		t.Errorf("unexpected result: %+v", files)
	}
}

func TestScanner_ScanMissingSource(t *testing.T) {
	scanner := NewScanner()
	if _, err := scanner.Scan(filepath.Join(t.TempDir(), "missing.tsx")); err == nil {
		t.Error("Expected an error for a missing source")
	}
}

func TestScanner_ExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"test.js":                      "test",
		"test.go":                      "test",
		"src/components/Quiz.test.tsx": "test",
		"src/components/Quiz.tsx":      "test",
	})

	scanner := NewScanner()
	if err := scanner.SetExcludeGlobs([]string{"*.go", "**.test.tsx"}); err != nil {
		t.Fatalf("SetExcludeGlobs failed: %v", err)
	}

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	expected := []string{"src/components/Quiz.tsx", "test.js"}
	got := relPaths(t, tmpDir, files)
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestScanner_IncludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"src/features/quiz/pages/QuizPreviewPage.tsx": "test",
		"src/features/quiz/api.ts":                    "test",
		"src/features/auth/Login.tsx":                 "test",
	})

	scanner := NewScanner()
	if err := scanner.SetIncludeGlobs([]string{"src/features/quiz/**"}); err != nil {
		t.Fatalf("SetIncludeGlobs failed: %v", err)
	}
	// include overrides exclude
	if err := scanner.SetExcludeGlobs([]string{"*.ts"}); err != nil {
		t.Fatalf("SetExcludeGlobs failed: %v", err)
	}

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := relPaths(t, tmpDir, files)
	expected := []string{"src/features/quiz/api.ts", "src/features/quiz/pages/QuizPreviewPage.tsx"}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestScanner_InvalidGlob(t *testing.T) {
	scanner := NewScanner()
	if err := scanner.SetIncludeGlobs([]string{"src/[a"}); err == nil {
		t.Error("Expected an error for an invalid glob")
	}
}

func TestScanner_IgnoredFolders(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"src/pages/Quiz.tsx":           "test",
		"src/stories/Quiz.stories.tsx": "test",
		"fixtures/sample.tsx":          "test",
	})

	scanner := NewScanner()
	scanner.AddExcludeDirs([]string{"src/stories", "fixtures"})

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	flagged := make(map[string]bool)
	for _, f := range relPaths(t, tmpDir, files) {
		flagged[f] = false
	}
	for _, f := range files {
		rel, _ := filepath.Rel(tmpDir, f.Path)
		flagged[filepath.ToSlash(rel)] = f.InIgnoredPath
	}

	if _, ok := flagged["fixtures/sample.tsx"]; ok {
		t.Error("folders named without a path should be skipped")
	}
	if !flagged["src/stories/Quiz.stories.tsx"] {
		t.Error("files under src/stories should be flagged InIgnoredPath")
	}
	if flagged["src/pages/Quiz.tsx"] {
		t.Error("src/pages/Quiz.tsx should not be flagged")
	}
}

func TestScanner_SetScanRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"web/Cart.vue":                 "test",
		"web/stories/Cart.stories.tsx": "test",
		"web/legacy/Old.tsx":           "test",
	})

	scanner := NewScanner()
	scanner.SetScanRoot(tmpDir)
	scanner.AddExcludeDirs([]string{"web/stories"})
	if err := scanner.SetExcludeGlobs([]string{"web/legacy/**"}); err != nil {
		t.Fatalf("SetExcludeGlobs failed: %v", err)
	}

	files, err := scanner.Scan(filepath.Join(tmpDir, "web"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := relPaths(t, tmpDir, files)
	expected := []string{"web/Cart.vue", "web/stories/Cart.stories.tsx"}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for _, f := range files {
		isStory := filepath.Base(f.Path) == "Cart.stories.tsx"
		if f.InIgnoredPath != isStory {
			t.Errorf("%s: InIgnoredPath = %v, want %v", f.Path, f.InIgnoredPath, isStory)
		}
	}
}
