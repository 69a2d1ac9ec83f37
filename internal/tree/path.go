package tree

import (
	"sort"
	"strconv"
	"strings"
)

// Split breaks a dotted key path into its segments. The empty path has no
// segments and names the root.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Join appends key to a dotted path
func Join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Resolve reports whether every segment of path can be walked from root.
// Each step needs the current node to be an object holding the segment.
// A segment may end in positional suffixes such as `items[2]`, which are
// only consulted when the literal segment is not a key of the object.
func Resolve(root *Node, path string) bool {
	_, ok := Lookup(root, path)
	return ok
}

// Lookup walks path from root and returns the node it names
func Lookup(root *Node, path string) (*Node, bool) {
	_, n, ok := walk(root, path)
	return n, ok
}

// Parent returns the container directly holding the node named by path.
// The root has no parent, so an empty path never resolves here.
func Parent(root *Node, path string) (*Node, bool) {
	if path == "" {
		return nil, false
	}
	parent, _, ok := walk(root, path)
	return parent, ok
}

func walk(root *Node, path string) (parent, current *Node, ok bool) {
	if root == nil {
		return nil, nil, false
	}
	current = root
	for _, seg := range Split(path) {
		parent, current, ok = step(current, seg)
		if !ok {
			return nil, nil, false
		}
	}
	return parent, current, true
}

// step descends one segment and also returns the container the result was
// taken from.
func step(n *Node, seg string) (*Node, *Node, bool) {
	if child, ok := n.Get(seg); ok {
		return n, child, true
	}
	name, indexes, ok := parseIndexed(seg)
	if !ok || len(indexes) == 0 {
		return nil, nil, false
	}
	current := n
	if name != "" {
		child, ok := current.Get(name)
		if !ok {
			return nil, nil, false
		}
		current = child
	}
	var parent *Node
	for _, i := range indexes {
		item, ok := current.Index(i)
		if !ok {
			return nil, nil, false
		}
		parent, current = current, item
	}
	return parent, current, true
}

// parseIndexed splits `name[1][2]` into "name" and [1 2]
func parseIndexed(seg string) (string, []int, bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, true
	}
	name := seg[:open]
	rest := seg[open:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil || i < 0 {
			return "", nil, false
		}
		indexes = append(indexes, i)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

// Find searches the tree depth-first in document order for the first object
// entry whose own key equals key, and returns its path. Array items extend
// the path with `[i]`. Only key names are compared, so an unrelated nested
// key with the same name can match.
func Find(root *Node, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	return find(root, key, "")
}

func find(n *Node, key, path string) (string, bool) {
	switch n.Kind() {
	case KindObject:
		for _, e := range n.entries {
			p := Join(path, e.Key)
			if e.Key == key {
				return p, true
			}
			if found, ok := find(e.Value, key, p); ok {
				return found, true
			}
		}
	case KindArray:
		for i, item := range n.items {
			if found, ok := find(item, key, path+"["+strconv.Itoa(i)+"]"); ok {
				return found, true
			}
		}
	}
	return "", false
}

// Leaves returns the sorted dotted paths of every non-object value below
// root, each prefixed with prefix. Arrays count as leaves.
func Leaves(root *Node, prefix string) []string {
	var out []string
	collectLeaves(root, prefix, &out)
	sort.Strings(out)
	return out
}

func collectLeaves(n *Node, path string, out *[]string) {
	if n.Kind() != KindObject {
		if path != "" {
			*out = append(*out, path)
		}
		return
	}
	for _, e := range n.entries {
		collectLeaves(e.Value, Join(path, e.Key), out)
	}
}
