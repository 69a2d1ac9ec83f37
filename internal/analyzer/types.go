package analyzer

import "github.com/jenian/keygrd/internal/tree"

// KeyUsage represents a single reference to a translation key in code
type KeyUsage struct {
	Key           string // Key suffix after the namespace prefix
	File          string // File path where it's used (relative to the scan root)
	Line          int    // Line number where it's used
	CodeSnippet   string // Code snippet from the line where it's used
	InIgnoredPath bool   // True if this usage is in a folder that should be ignored
}

// Locale is one loaded translation file
type Locale struct {
	Tag   string     // BCP 47 tag, e.g. "en"
	Label string     // Display label, e.g. "EN"
	Path  string     // File the tree was loaded from
	Tree  *tree.Node // Parsed document, never mutated
}

// LocaleReport holds the per-locale findings
type LocaleReport struct {
	Tag     string
	Label   string
	Path    string
	Missing []string // Full dotted paths of required keys that do not resolve, sorted
	Unused  []string // Leaves under the namespace no required key refers to, sorted
}

// ScanResult contains the complete analysis results
type ScanResult struct {
	Namespace          string
	Required           []string              // Distinct required key suffixes, sorted
	Usages             map[string][]KeyUsage // Usages grouped by key suffix
	Locales            []LocaleReport        // One report per locale, in configured order
	IgnoredMissing     int                   // Count of missing keys that were ignored via config
	IgnoredFromFolders int                   // Count of keys only referenced from ignored folders
}

// FullKey reattaches the namespace to a key suffix
func (r ScanResult) FullKey(suffix string) string {
	return tree.Join(r.Namespace, suffix)
}

// MissingCount returns the total number of missing entries across locales
func (r ScanResult) MissingCount() int {
	n := 0
	for _, l := range r.Locales {
		n += len(l.Missing)
	}
	return n
}
