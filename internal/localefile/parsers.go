package localefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jenian/keygrd/internal/tree"
	"gopkg.in/yaml.v3"
)

// Format is a locale file syntax
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// detectFormat determines the locale file syntax from its extension.
// Unknown extensions are read as JSON.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// parse decodes data in the given format into a tree
func parse(data []byte, format Format) (*tree.Node, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

// parseJSON decodes a JSON document token by token so object entries keep
// their document order.
func parseJSON(data []byte) (*tree.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value at offset %d", tok, dec.InputOffset())
	}
	return root, nil
}

func decodeJSONValue(dec *json.Decoder) (*tree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			var entries []tree.Entry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not a string", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				entries = append(entries, tree.Entry{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return tree.NewObject(entries...), nil
		case '[':
			var items []*tree.Node
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return tree.NewArray(items...), nil
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", v, dec.InputOffset())
		}
	case string:
		return tree.NewString(v), nil
	case json.Number:
		return tree.NewNumber(v.String()), nil
	case bool:
		return tree.NewBool(v), nil
	case nil:
		return tree.NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// parseYAML decodes a YAML document through yaml.Node so mapping order is
// kept. An empty document yields a null root.
func parseYAML(data []byte) (*tree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return tree.NewNull(), nil
	}
	return convertYAML(&doc, make(map[*yaml.Node]bool))
}

// errRecursiveAlias marks an alias that refers to a node it sits inside of
var errRecursiveAlias = errors.New("recursive alias")

// convertYAML expands aliases in place. expanding holds the anchors whose
// alias is being expanded on the current path.
func convertYAML(n *yaml.Node, expanding map[*yaml.Node]bool) (*tree.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tree.NewNull(), nil
		}
		return convertYAML(n.Content[0], expanding)
	case yaml.AliasNode:
		if expanding[n.Alias] {
			return nil, fmt.Errorf("line %d: %w *%s", n.Line, errRecursiveAlias, n.Value)
		}
		expanding[n.Alias] = true
		defer delete(expanding, n.Alias)
		return convertYAML(n.Alias, expanding)
	case yaml.MappingNode:
		entries := make([]tree.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := convertYAML(n.Content[i+1], expanding)
			if err != nil {
				return nil, err
			}
			entries = append(entries, tree.Entry{Key: n.Content[i].Value, Value: value})
		}
		return tree.NewObject(entries...), nil
	case yaml.SequenceNode:
		items := make([]*tree.Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := convertYAML(c, expanding)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return tree.NewArray(items...), nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return tree.NewNull(), nil
		case "!!bool":
			b, err := strconv.ParseBool(strings.ToLower(n.Value))
			if err != nil {
				// yaml 1.1 spellings such as "yes" stay text
				return tree.NewString(n.Value), nil
			}
			return tree.NewBool(b), nil
		case "!!int", "!!float":
			return tree.NewNumber(n.Value), nil
		default:
			return tree.NewString(n.Value), nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// lineOf converts a byte offset into a 1-based line number
func lineOf(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
