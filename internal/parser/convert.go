package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// nodeToJSON converts a YAML node to JSON, keeping mapping key order.
func nodeToJSON(n *yaml.Node) ([]byte, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return []byte("null"), nil
		}
		return nodeToJSON(n.Content[0])
	case yaml.AliasNode:
		return nodeToJSON(n.Alias)
	case yaml.MappingNode:
		members := make([]utils.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, NewParseError(k.Line, k.Column, "mapping keys must be scalars", nil)
			}
			if k.Tag == "!!merge" {
				return nil, NewParseError(k.Line, k.Column, "merge keys are not supported", nil)
			}
			raw, err := nodeToJSON(v)
			if err != nil {
				return nil, err
			}
			members = append(members, utils.Member{Key: k.Value, Raw: raw})
		}
		return utils.WriteObject(members)
	case yaml.SequenceNode:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := nodeToJSON(item)
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case yaml.ScalarNode:
		return scalarToJSON(n)
	}
	return nil, NewParseError(n.Line, n.Column, fmt.Sprintf("unsupported yaml node kind %d", n.Kind), nil)
}

func scalarToJSON(n *yaml.Node) ([]byte, error) {
	var v any
	switch n.ShortTag() {
	case "!!null":
		return []byte("null"), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, NewParseError(n.Line, n.Column, "invalid boolean", err)
		}
		v = b
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, NewParseError(n.Line, n.Column, "invalid integer", err)
		}
		v = i
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, NewParseError(n.Line, n.Column, "invalid number", err)
		}
		v = f
	default:
		// timestamps and binary stay as their source text
		v = n.Value
	}
	raw, err := utils.Marshal(v)
	if err != nil {
		return nil, NewParseError(n.Line, n.Column, "cannot encode value", err)
	}
	return raw, nil
}

// jsonToNode converts JSON to a YAML node, keeping object key order.
func jsonToNode(raw []byte) (*yaml.Node, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '{':
		members, err := utils.ObjectMembers(trimmed)
		if err != nil {
			return nil, err
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range members {
			value, err := jsonToNode(m.Raw)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, value)
		}
		return node, nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		items, err := utils.ArrayElements(trimmed)
		if err != nil {
			return nil, err
		}
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			child, err := jsonToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	}

	var v any
	if err := utils.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	node := &yaml.Node{}
	if f, ok := v.(float64); ok && f == float64(int64(f)) && !strings.ContainsAny(string(trimmed), ".eE") {
		v = int64(f)
	}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}
