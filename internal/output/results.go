package output

import (
	"encoding/json"
	"io"
)

// FormatKeys writes the required keys found in the source
func FormatKeys(w io.Writer, keys []string, opts Options) error {
	if opts.JSON {
		if keys == nil {
			keys = []string{}
		}
		return WriteJSON(w, struct {
			Required []string `json:"required"`
		}{keys})
	}
	newPrinter(w).list("Required keys", colorCyan, keys)
	return nil
}

// FindResult is the Path Finder outcome for one locale
type FindResult struct {
	Label    string `json:"label"`
	Key      string `json:"key"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Resolves bool   `json:"resolves"`         // Path resolves back through the resolver
	Value    string `json:"value,omitempty"`  // Summary of the value at Path
	Parent   string `json:"parent,omitempty"` // Summary of the node holding it
}

// FormatFind writes one line per locale with the path of the first entry
// named after the searched key, the value found there and the node holding it
func FormatFind(w io.Writer, results []FindResult, opts Options) error {
	if opts.JSON {
		if results == nil {
			results = []FindResult{}
		}
		return WriteJSON(w, results)
	}

	p := newPrinter(w)
	for _, r := range results {
		if !r.Found {
			p.printf("%s%s:%s %q %snot found%s\n", p.c(colorBold), r.Label, p.c(colorReset), r.Key, p.c(colorRed), p.c(colorReset))
			continue
		}
		p.printf("%s%s:%s %s%s%s", p.c(colorBold), r.Label, p.c(colorReset), p.c(colorGreen), r.Path, p.c(colorReset))
		if !r.Resolves {
			p.printf("  %sdoes not resolve%s\n", p.c(colorRed), p.c(colorReset))
			continue
		}
		p.printf("  %s%s%s", p.c(colorGray), r.Value, p.c(colorReset))
		if r.Parent != "" {
			p.printf("  %sin %s%s", p.c(colorGray), r.Parent, p.c(colorReset))
		}
		p.printf("\n")
	}
	return nil
}

// ParityResult lists the leaf paths only one of two locales has
type ParityResult struct {
	Prefix string   `json:"prefix"`
	LabelA string   `json:"a"`
	LabelB string   `json:"b"`
	OnlyA  []string `json:"only_a"`
	OnlyB  []string `json:"only_b"`
}

// InSync reports whether both locales hold the same leaves
func (r ParityResult) InSync() bool {
	return len(r.OnlyA) == 0 && len(r.OnlyB) == 0
}

// FormatParity writes the keys present in only one of two locales
func FormatParity(w io.Writer, r ParityResult, opts Options) error {
	if opts.JSON {
		return WriteJSON(w, r)
	}

	p := newPrinter(w)
	p.list("Only in "+r.LabelA, colorYellow, r.OnlyA)
	p.printf("\n")
	p.list("Only in "+r.LabelB, colorYellow, r.OnlyB)
	p.printf("\n")

	scope := ""
	if r.Prefix != "" {
		scope = " under " + r.Prefix
	}
	if r.InSync() {
		p.printf("%s%s✓ %s and %s define the same keys%s.%s\n", p.c(colorGreen), p.c(colorBold), r.LabelA, r.LabelB, scope, p.c(colorReset))
	} else {
		p.printf("%s%s✗ %s and %s differ in %d key(s)%s.%s\n", p.c(colorRed), p.c(colorBold), r.LabelA, r.LabelB, len(r.OnlyA)+len(r.OnlyB), scope, p.c(colorReset))
	}
	return nil
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
