package analyzer

import (
	"sort"
	"strings"

	"github.com/jenian/keygrd/internal/config"
	"github.com/jenian/keygrd/internal/tree"
)

// Analyze compares the keys referenced in code with the loaded locale trees
// usages: every reference found under the namespace (suffixes only)
// namespace: prefix reattached to each suffix, e.g. quizOverview
// locales: loaded trees, reported in the given order
// cfg: configuration for ignoring keys, may be nil
func Analyze(usages []KeyUsage, namespace string, locales []Locale, cfg *config.Config) ScanResult {
	result := ScanResult{
		Namespace: namespace,
		Required:  []string{},
		Usages:    make(map[string][]KeyUsage),
		Locales:   make([]LocaleReport, 0, len(locales)),
	}

	// Group usages by key, keeping ignored-folder usages apart
	byKey := make(map[string][]KeyUsage)
	ignoredOnly := make(map[string]bool)
	for _, usage := range usages {
		if usage.InIgnoredPath {
			if _, seen := byKey[usage.Key]; !seen {
				ignoredOnly[usage.Key] = true
			}
			continue
		}
		delete(ignoredOnly, usage.Key)
		byKey[usage.Key] = append(byKey[usage.Key], usage)
	}
	result.IgnoredFromFolders = len(ignoredOnly)

	for key, keyUsages := range byKey {
		result.Required = append(result.Required, key)
		result.Usages[key] = keyUsages
	}
	sort.Strings(result.Required)

	ignored := make(map[string]bool)
	for _, locale := range locales {
		report := LocaleReport{
			Tag:     locale.Tag,
			Label:   locale.Label,
			Path:    locale.Path,
			Missing: []string{},
			Unused:  Unused(locale.Tree, namespace, result.Required),
		}
		for _, key := range result.Required {
			full := result.FullKey(key)
			if tree.Resolve(locale.Tree, full) {
				continue
			}
			if cfg != nil && cfg.ShouldIgnoreMissing(full) {
				ignored[full] = true
				continue
			}
			report.Missing = append(report.Missing, full)
		}
		result.Locales = append(result.Locales, report)
	}
	result.IgnoredMissing = len(ignored)

	return result
}

// Unused returns the leaves under the namespace subtree of root that no
// required key refers to. A key refers to a leaf when it names the leaf,
// one of its ancestors or one of its descendants.
func Unused(root *tree.Node, namespace string, required []string) []string {
	subtree, ok := tree.Lookup(root, namespace)
	if !ok || subtree.Kind() != tree.KindObject {
		return []string{}
	}

	full := make([]string, 0, len(required))
	for _, key := range required {
		full = append(full, tree.Join(namespace, key))
	}

	unused := []string{}
	for _, leaf := range tree.Leaves(subtree, namespace) {
		used := false
		for _, key := range full {
			if key == leaf || isUnder(leaf, key) || isUnder(key, leaf) {
				used = true
				break
			}
		}
		if !used {
			unused = append(unused, leaf)
		}
	}
	return unused
}

// isUnder reports whether path lies below ancestor in a dotted path
func isUnder(path, ancestor string) bool {
	if !strings.HasPrefix(path, ancestor) || len(path) == len(ancestor) {
		return false
	}
	next := path[len(ancestor)]
	return next == '.' || next == '['
}

// Parity compares the leaf paths of two trees below prefix (the whole tree
// when prefix is empty) and returns the paths only a has and only b has,
// both sorted.
func Parity(a, b *tree.Node, prefix string) (onlyA, onlyB []string) {
	leavesA := subtreeLeaves(a, prefix)
	leavesB := subtreeLeaves(b, prefix)

	inB := make(map[string]bool, len(leavesB))
	for _, p := range leavesB {
		inB[p] = true
	}
	inA := make(map[string]bool, len(leavesA))
	for _, p := range leavesA {
		inA[p] = true
	}

	onlyA, onlyB = []string{}, []string{}
	for _, p := range leavesA {
		if !inB[p] {
			onlyA = append(onlyA, p)
		}
	}
	for _, p := range leavesB {
		if !inA[p] {
			onlyB = append(onlyB, p)
		}
	}
	return onlyA, onlyB
}

func subtreeLeaves(root *tree.Node, prefix string) []string {
	n, ok := tree.Lookup(root, prefix)
	if !ok {
		return nil
	}
	return tree.Leaves(n, prefix)
}
