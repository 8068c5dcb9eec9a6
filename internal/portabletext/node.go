package portabletext

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node types produced by the formatter.
const (
	NodeText      = "text"
	NodeParagraph = "paragraph"
	NodeListItem  = "list_item"

	listSuffix  = "_list"
	styleNormal = "normal"
)

// Node is one element of the output tree (a StructuredBlock).
//
// Text leaves set Text. Containers set Children, which is non-nil even when
// empty. Custom nodes set neither, so their content is absent on the wire.
type Node struct {
	Type     string
	Text     *string
	Children []Node
	Props    map[string]any
}

// TextNode returns a text leaf.
func TextNode(text string) Node {
	return Node{Type: NodeText, Text: &text}
}

// ContainerNode returns a node whose content is children.
func ContainerNode(typ string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Type: typ, Children: children}
}

// ListNodeType returns the node type used for a list of the given kind.
func ListNodeType(kind ListKind) string {
	return string(kind) + listSuffix
}

// IsText reports whether n is a text leaf.
func (n Node) IsText() bool {
	return n.Text != nil
}

// HasContent reports whether n carries content of either form.
func (n Node) HasContent() bool {
	return n.Text != nil || n.Children != nil
}

// IsList reports whether n is a list container.
func (n Node) IsList() bool {
	return strings.HasSuffix(n.Type, listSuffix) && n.Children != nil
}

type wireNode struct {
	Type    string `json:"type" yaml:"type"`
	Content any    `json:"content,omitempty" yaml:"content,omitempty"`
	Props   any    `json:"props,omitempty" yaml:"props,omitempty"`
}

func (n Node) wire() wireNode {
	w := wireNode{Type: n.Type}
	switch {
	case n.Text != nil:
		w.Content = *n.Text
	case n.Children != nil:
		w.Content = n.Children
	}
	if n.Props != nil {
		w.Props = n.Props
	}
	return w
}

// MarshalJSON encodes n as {type, content?, props?}.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.wire())
}

// MarshalYAML encodes n with the same shape as MarshalJSON.
func (n Node) MarshalYAML() (interface{}, error) {
	w := n.wire()
	if n.Props != nil {
		w.Props = yamlValue(n.Props)
	}
	return w, nil
}

// yamlValue rewrites json.Number values as numeric scalars. yaml.v3 would
// otherwise emit them as quoted strings.
func yamlValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = yamlValue(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, value := range v {
			out[i] = yamlValue(value)
		}
		return out
	default:
		return v
	}
}

// UnmarshalJSON decodes the {type, content?, props?} shape.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    string          `json:"type"`
		Content json.RawMessage `json:"content"`
		Props   json.RawMessage `json:"props"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = Node{Type: raw.Type}
	if len(raw.Props) > 0 && string(raw.Props) != "null" {
		dec := json.NewDecoder(bytes.NewReader(raw.Props))
		dec.UseNumber()
		if err := dec.Decode(&n.Props); err != nil {
			return err
		}
	}
	content := strings.TrimSpace(string(raw.Content))
	switch {
	case content == "" || content == "null":
	case strings.HasPrefix(content, `"`):
		var text string
		if err := json.Unmarshal(raw.Content, &text); err != nil {
			return err
		}
		n.Text = &text
	default:
		children := []Node{}
		if err := json.Unmarshal(raw.Content, &children); err != nil {
			return err
		}
		n.Children = children
	}
	return nil
}

// Walk visits nodes depth-first, parents before children. Returning false
// from fn skips the node's children.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(n Node, depth int) bool) {
	for _, n := range nodes {
		if fn(n, depth) && len(n.Children) > 0 {
			walk(n.Children, depth+1, fn)
		}
	}
}
