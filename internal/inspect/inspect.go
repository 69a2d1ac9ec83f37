// Package inspect prints the shape of one subtree of each locale so that
// structural drift between locales can be read at a glance.
package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/tree"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Child is one immediate child of an inspected subtree
type Child struct {
	Key     string    `json:"key"` // Object key, or [i] for array items
	Kind    tree.Kind `json:"-"`
	Summary string    `json:"summary"`
}

// Shape is the top-level structure of one subtree in one locale
type Shape struct {
	Label    string  `json:"label"`
	File     string  `json:"file"`
	Subtree  string  `json:"subtree"`
	Found    bool    `json:"found"`
	Summary  string  `json:"summary,omitempty"`
	Children []Child `json:"children,omitempty"`
}

// Inspect resolves subtree in the locale and lists its immediate children in
// document order. An empty subtree inspects the root.
func Inspect(locale analyzer.Locale, subtree string) Shape {
	shape := Shape{Label: locale.Label, File: locale.Path, Subtree: subtree}

	n, ok := tree.Lookup(locale.Tree, subtree)
	if !ok {
		return shape
	}
	shape.Found = true
	shape.Summary = n.Summary()

	switch n.Kind() {
	case tree.KindObject:
		for _, e := range n.Entries() {
			shape.Children = append(shape.Children, Child{Key: e.Key, Kind: e.Value.Kind(), Summary: e.Value.Summary()})
		}
	case tree.KindArray:
		for i, item := range n.Items() {
			shape.Children = append(shape.Children, Child{Key: "[" + strconv.Itoa(i) + "]", Kind: item.Kind(), Summary: item.Summary()})
		}
	}
	return shape
}

func (s Shape) name() string {
	if s.Subtree == "" {
		return "(root)"
	}
	return s.Subtree
}

// Render writes every shape as an indented listing
func Render(w io.Writer, shapes []Shape) {
	for i, s := range shapes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s):\n", s.Label, s.File)
		if !s.Found {
			fmt.Fprintf(w, "  %s: not found\n", s.name())
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", s.name(), s.Summary)
		for _, c := range s.Children {
			fmt.Fprintf(w, "    %s: %s\n", c.Key, c.Summary)
		}
	}
}

// describe renders a child without its scalar value, since translated text
// always differs between locales
func (c Child) describe() string {
	if c.Kind == tree.KindObject || c.Kind == tree.KindArray {
		return c.Summary
	}
	return c.Kind.String()
}

// structure returns the child keys in document order and their descriptions
func (s Shape) structure() (keys []string, desc map[string]string) {
	desc = make(map[string]string, len(s.Children))
	if !s.Found {
		return nil, desc
	}
	for _, c := range s.Children {
		keys = append(keys, c.Key)
		desc[c.Key] = c.describe()
	}
	return keys, desc
}

// keyAlphabet encodes child keys as single runes so the diff aligns whole
// keys. Runes stay below the surrogate range.
type keyAlphabet struct {
	index map[string]rune
	keys  []string
}

func (k *keyAlphabet) encode(keys []string) []rune {
	out := make([]rune, 0, len(keys))
	for _, key := range keys {
		r, ok := k.index[key]
		if !ok {
			r = rune(len(k.keys) + 1)
			k.index[key] = r
			k.keys = append(k.keys, key)
		}
		out = append(out, r)
	}
	return out
}

func (k *keyAlphabet) decode(r rune) string {
	return k.keys[r-1]
}

// Diff compares the structure of two shapes child by child. Child keys are
// aligned with a sequence diff; "- " lines hold a's side, "+ " lines b's
// side and "  " lines children both describe the same way. A child present
// in both with different descriptions shows as a "-" line directly followed
// by a "+" line. Diff is empty when the structures match.
func Diff(a, b Shape) string {
	keysA, descA := a.structure()
	keysB, descB := b.structure()

	alphabet := &keyAlphabet{index: make(map[string]rune)}
	runesA, runesB := alphabet.encode(keysA), alphabet.encode(keysB)
	diffs := diffmatchpatch.New().DiffMainRunes(runesA, runesB, false)

	var body strings.Builder
	changed := a.Found != b.Found
	for _, d := range diffs {
		for _, r := range d.Text {
			key := alphabet.decode(r)
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(&body, "- %s: %s\n", key, descA[key])
				changed = true
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(&body, "+ %s: %s\n", key, descB[key])
				changed = true
			default:
				if descA[key] == descB[key] {
					fmt.Fprintf(&body, "  %s: %s\n", key, descA[key])
					continue
				}
				fmt.Fprintf(&body, "- %s: %s\n+ %s: %s\n", key, descA[key], key, descB[key])
				changed = true
			}
		}
	}
	if !changed {
		return ""
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s\n", a.Label, b.Label)
	if !a.Found {
		fmt.Fprintf(&out, "- %s: not found\n", a.name())
	}
	if !b.Found {
		fmt.Fprintf(&out, "+ %s: not found\n", b.name())
	}
	out.WriteString(body.String())
	return out.String()
}
