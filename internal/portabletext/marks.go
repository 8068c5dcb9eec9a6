package portabletext

import (
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// knownDecorators breaks run-length ties; earlier entries nest further out.
var knownDecorators = []string{"strong", "b", "em", "i", "underline", "u", "strike-through", "s", "code"}

func decoratorRank(mark string) int {
	if i := slices.Index(knownDecorators, mark); i >= 0 {
		return i
	}
	return len(knownDecorators)
}

// runLength counts the span at index plus the unbroken run of following
// siblings that also carry mark.
func runLength(mark string, index int, spans []Span) int {
	n := 1
	for _, sibling := range spans[index+1:] {
		if !sibling.HasMark(mark) {
			break
		}
		n++
	}
	return n
}

// canonicalMarkOrder orders the distinct marks of spans[index] from outermost
// to innermost. Marks that keep going across more of the following siblings
// come first, so neighbouring spans agree on their outer wrappers. The input
// order of the marks has no effect.
func canonicalMarkOrder(index int, spans []Span) []string {
	span := spans[index]
	if len(span.Marks) == 0 {
		return nil
	}

	marks := mapset.NewSet[string](span.Marks...).ToSlice()
	runs := make(map[string]int, len(marks))
	for _, mark := range marks {
		runs[mark] = runLength(mark, index, spans)
	}

	slices.SortFunc(marks, func(a, b string) int {
		if c := cmp.Compare(runs[b], runs[a]); c != 0 {
			return c
		}
		if c := cmp.Compare(decoratorRank(a), decoratorRank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return marks
}

func findMarkDef(defs []MarkDef, key string) (MarkDef, bool) {
	for _, def := range defs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}

// markNode wraps inner in the node for mark. A mark with a definition takes
// the definition's kind and public fields; a bare decorator keeps its id.
func markNode(mark string, defs []MarkDef, inner Node) Node {
	node := ContainerNode(mark, inner)
	if def, ok := findMarkDef(defs, mark); ok {
		node.Type = def.Type
		node.Props = publicFields(def.Fields)
	}
	return node
}

// nestSpans builds the content of one block: a text leaf per span, wrapped
// in one node per distinct mark.
func nestSpans(spans []Span, defs []MarkDef) []Node {
	nodes := make([]Node, 0, len(spans))

	for i, span := range spans {
		node := TextNode(span.Text)
		marks := canonicalMarkOrder(i, spans)
		for j := len(marks) - 1; j >= 0; j-- {
			node = markNode(marks[j], defs, node)
		}
		nodes = append(nodes, node)
	}

	return nodes
}
