package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jenian/keygrd/internal/analyzer"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// maxSnippet is the longest code snippet printed under a usage
const maxSnippet = 80

// Options controls what the report contains
type Options struct {
	JSON       bool // Render JSON instead of text
	ShowUnused bool // Include the unused-keys sections
	Silent     bool // Print nothing; the exit code carries the result
}

// printer writes to w, coloring only when w is a terminal
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, color: colorSupported(w)}
}

// colorSupported reports whether w is a terminal that accepts ANSI codes
func colorSupported(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	// On Windows, ANSI processing must be switched on (formatter_windows.go)
	return enableANSI(f)
}

// c returns the color code if colors are enabled, empty string otherwise
func (p *printer) c(code string) string {
	if p.color {
		return code
	}
	return ""
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// heading prints "<title> (N):" or "<title>: None" and reports whether
// there is anything to list
func (p *printer) heading(title, color string, n int) bool {
	if n == 0 {
		p.printf("%s%s:%s None\n", p.c(colorBold), title, p.c(colorReset))
		return false
	}
	p.printf("%s%s%s (%d):%s\n", p.c(colorBold), p.c(color), title, n, p.c(colorReset))
	return true
}

// list prints a heading followed by one indented line per item
func (p *printer) list(title, color string, items []string) {
	if !p.heading(title, color, len(items)) {
		return
	}
	for _, item := range items {
		p.printf("  %s%s%s\n", p.c(color), item, p.c(colorReset))
	}
}

func (p *printer) usage(u analyzer.KeyUsage) {
	filePath := u.File
	if filePath == "" {
		filePath = "<unknown>"
	}
	p.printf("    %sused in:%s %s%s%s:%s%d%s", p.c(colorGray), p.c(colorReset), p.c(colorCyan), filePath, p.c(colorReset), p.c(colorYellow), u.Line, p.c(colorReset))
	if u.CodeSnippet != "" {
		p.printf(" %s%s%s", p.c(colorGray), truncate(u.CodeSnippet, maxSnippet), p.c(colorReset))
	}
	p.printf("\n")
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Namespace          string       `json:"namespace"`
	Required           []string     `json:"required"`
	Locales            []JSONLocale `json:"locales"`
	IgnoredMissing     int          `json:"ignored_missing"`
	IgnoredFromFolders int          `json:"ignored_from_folders"`
	Summary            JSONSummary  `json:"summary"`
}

// JSONLocale holds one locale's findings
type JSONLocale struct {
	Tag     string       `json:"tag"`
	Label   string       `json:"label"`
	Path    string       `json:"path"`
	Missing []MissingKey `json:"missing"`
	Unused  []string     `json:"unused,omitempty"`
}

// MissingKey represents a missing key with the places it is used
type MissingKey struct {
	Key       string   `json:"key"`
	Locations []string `json:"locations"`
}

// JSONSummary holds the report counts
type JSONSummary struct {
	TotalRequired int            `json:"total_required"`
	Missing       map[string]int `json:"missing"`
}

// Format writes the missing-key report for result to w
func Format(w io.Writer, result analyzer.ScanResult, opts Options) error {
	if opts.Silent {
		return nil
	}
	if opts.JSON {
		return formatJSON(w, result, opts)
	}
	formatHumanReadable(w, result, opts)
	return nil
}

// locations renders the usages of a key suffix as "file:line (snippet)"
func locations(result analyzer.ScanResult, suffix string) []string {
	usages := result.Usages[suffix]
	locs := make([]string, 0, len(usages))
	for _, usage := range usages {
		loc := fmt.Sprintf("%s:%d", usage.File, usage.Line)
		if usage.CodeSnippet != "" {
			loc += fmt.Sprintf(" (%s)", usage.CodeSnippet)
		}
		locs = append(locs, loc)
	}
	return locs
}

// formatJSON outputs results in JSON format
func formatJSON(w io.Writer, result analyzer.ScanResult, opts Options) error {
	out := JSONOutput{
		Namespace:          result.Namespace,
		Required:           result.Required,
		Locales:            make([]JSONLocale, 0, len(result.Locales)),
		IgnoredMissing:     result.IgnoredMissing,
		IgnoredFromFolders: result.IgnoredFromFolders,
		Summary: JSONSummary{
			TotalRequired: len(result.Required),
			Missing:       make(map[string]int, len(result.Locales)),
		},
	}
	if out.Required == nil {
		out.Required = []string{}
	}

	prefix := result.Namespace + "."
	for _, l := range result.Locales {
		jl := JSONLocale{
			Tag:     l.Tag,
			Label:   l.Label,
			Path:    l.Path,
			Missing: make([]MissingKey, 0, len(l.Missing)),
		}
		for _, full := range l.Missing {
			jl.Missing = append(jl.Missing, MissingKey{
				Key:       full,
				Locations: locations(result, strings.TrimPrefix(full, prefix)),
			})
		}
		if opts.ShowUnused {
			jl.Unused = l.Unused
		}
		out.Locales = append(out.Locales, jl)
		out.Summary.Missing[l.Label] = len(l.Missing)
	}

	return WriteJSON(w, out)
}

// formatHumanReadable prints the required keys, the missing keys of every
// locale and a summary of the counts
func formatHumanReadable(w io.Writer, result analyzer.ScanResult, opts Options) {
	p := newPrinter(w)
	prefix := result.Namespace + "."

	p.list("Required keys", colorCyan, result.Required)
	p.printf("\n")

	for _, l := range result.Locales {
		if p.heading("Missing in "+l.Label, colorRed, len(l.Missing)) {
			for _, full := range l.Missing {
				p.printf("  %s%s%s\n", p.c(colorRed), full, p.c(colorReset))
				for _, u := range result.Usages[strings.TrimPrefix(full, prefix)] {
					p.usage(u)
				}
			}
		}
		p.printf("\n")
	}

	if opts.ShowUnused {
		for _, l := range result.Locales {
			p.list("Unused in "+l.Label, colorYellow, l.Unused)
			p.printf("\n")
		}
	}

	if result.IgnoredMissing > 0 {
		p.printf("%s%sNote:%s %d missing key(s) were ignored (configured in .keygrd.yaml)\n", p.c(colorGray), p.c(colorBold), p.c(colorReset), result.IgnoredMissing)
	}
	if result.IgnoredFromFolders > 0 {
		p.printf("%s%sNote:%s %d key(s) found only in ignored folders were excluded from the check\n", p.c(colorGray), p.c(colorBold), p.c(colorReset), result.IgnoredFromFolders)
	}
	if result.IgnoredMissing > 0 || result.IgnoredFromFolders > 0 {
		p.printf("\n")
	}

	p.printf("%sSummary:%s\n", p.c(colorBold), p.c(colorReset))
	p.printf("  Total required: %d\n", len(result.Required))
	for _, l := range result.Locales {
		color := colorGreen
		if len(l.Missing) > 0 {
			color = colorRed
		}
		p.printf("  Missing in %s: %s%d%s\n", l.Label, p.c(color), len(l.Missing), p.c(colorReset))
	}
	if opts.ShowUnused {
		for _, l := range result.Locales {
			p.printf("  Unused in %s: %d\n", l.Label, len(l.Unused))
		}
	}
}

// HasIssues returns true if any locale misses a required key, or has unused
// keys when those are reported
// Note: Ignored missing keys don't count as issues
func HasIssues(result analyzer.ScanResult, opts Options) bool {
	if result.MissingCount() > 0 {
		return true
	}
	if opts.ShowUnused {
		for _, l := range result.Locales {
			if len(l.Unused) > 0 {
				return true
			}
		}
	}
	return false
}
