package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/salmonumbrella/ptree/internal/output"
	"github.com/salmonumbrella/ptree/internal/portabletext"
)

// nodeTree is the formatted document as handed to the printer. JSON and YAML
// encode it as the node array; text and table use the methods below.
type nodeTree []portabletext.Node

// RenderText writes one line per node, indented two spaces per depth.
func (t nodeTree) RenderText(w io.Writer) error {
	var werr error
	portabletext.Walk(t, func(n portabletext.Node, depth int) bool {
		if werr != nil {
			return false
		}
		_, werr = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describeNode(n))
		return true
	})
	return werr
}

// Table flattens the tree into one row per node.
func (t nodeTree) Table() output.Table {
	table := output.NewTable("DEPTH", "TYPE", "CONTENT", "PROPS")
	portabletext.Walk(t, func(n portabletext.Node, depth int) bool {
		content := ""
		switch {
		case n.IsText():
			content = strconv.Quote(*n.Text)
		case n.IsList():
			content = countLabel(len(n.Children), "item")
		case n.Children != nil:
			content = countLabel(len(n.Children), "child")
		}
		table.AddRow(strconv.Itoa(depth), n.Type, content, formatProps(n.Props))
		return true
	})
	return table
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if noun == "child" {
		return fmt.Sprintf("%d children", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func describeNode(n portabletext.Node) string {
	parts := []string{n.Type}
	if n.IsText() {
		parts = append(parts, strconv.Quote(*n.Text))
	}
	if props := formatProps(n.Props); props != "" {
		parts = append(parts, props)
	}
	return strings.Join(parts, " ")
}

// formatProps renders props as key=value pairs sorted by key, with values
// JSON-encoded.
func formatProps(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		data, err := json.Marshal(props[k])
		if err != nil {
			data = []byte(fmt.Sprint(props[k]))
		}
		pairs = append(pairs, k+"="+string(data))
	}
	return strings.Join(pairs, " ")
}
