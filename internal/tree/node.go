package tree

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Node holds
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Entry is one key/value pair of an object node
type Entry struct {
	Key   string
	Value *Node
}

// Node is a locale document value. Objects keep their entries in document
// order so traversals are deterministic. Nodes are never mutated after
// construction.
type Node struct {
	kind    Kind
	text    string // string value or number literal
	boolean bool
	items   []*Node
	entries []Entry
	index   map[string]int
}

// NewObject builds an object node. A repeated key replaces the earlier value
// but keeps the position of its first occurrence.
func NewObject(entries ...Entry) *Node {
	n := &Node{kind: KindObject, index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, ok := n.index[e.Key]; ok {
			n.entries[i].Value = e.Value
			continue
		}
		n.index[e.Key] = len(n.entries)
		n.entries = append(n.entries, e)
	}
	return n
}

// NewArray builds an array node
func NewArray(items ...*Node) *Node {
	return &Node{kind: KindArray, items: items}
}

// NewString builds a string leaf
func NewString(s string) *Node {
	return &Node{kind: KindString, text: s}
}

// NewNumber builds a number leaf from its literal text
func NewNumber(literal string) *Node {
	return &Node{kind: KindNumber, text: literal}
}

// NewBool builds a boolean leaf
func NewBool(b bool) *Node {
	return &Node{kind: KindBool, boolean: b}
}

// NewNull builds a null leaf
func NewNull() *Node {
	return &Node{kind: KindNull}
}

// Kind returns the variant of n. A nil node reports KindNull.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// Len returns the number of entries of an object or items of an array
func (n *Node) Len() int {
	switch n.Kind() {
	case KindObject:
		return len(n.entries)
	case KindArray:
		return len(n.items)
	default:
		return 0
	}
}

// Keys returns object keys in document order
func (n *Node) Keys() []string {
	if n.Kind() != KindObject {
		return nil
	}
	keys := make([]string, 0, len(n.entries))
	for _, e := range n.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the object entries in document order
func (n *Node) Entries() []Entry {
	if n.Kind() != KindObject {
		return nil
	}
	out := make([]Entry, len(n.entries))
	copy(out, n.entries)
	return out
}

// Items returns a copy of the array items
func (n *Node) Items() []*Node {
	if n.Kind() != KindArray {
		return nil
	}
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// Get returns the value stored under key when n is an object
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind() != KindObject {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.entries[i].Value, true
}

// Index returns the i-th item when n is an array
func (n *Node) Index(i int) (*Node, bool) {
	if n.Kind() != KindArray || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Text returns the scalar value as text. Containers return "".
func (n *Node) Text() string {
	switch n.Kind() {
	case KindString, KindNumber:
		return n.text
	case KindBool:
		return strconv.FormatBool(n.boolean)
	case KindNull:
		return "null"
	default:
		return ""
	}
}

// Summary describes n in one short line, e.g. `object (3 keys)` or
// `string "Quiz"`.
func (n *Node) Summary() string {
	switch n.Kind() {
	case KindObject:
		return fmt.Sprintf("object (%d %s)", n.Len(), plural(n.Len(), "key", "keys"))
	case KindArray:
		return fmt.Sprintf("array (%d %s)", n.Len(), plural(n.Len(), "item", "items"))
	case KindString:
		s := n.text
		if r := []rune(s); len(r) > 40 {
			s = string(r[:37]) + "..."
		}
		return fmt.Sprintf("string %q", s)
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("%s %s", n.Kind(), n.Text())
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
