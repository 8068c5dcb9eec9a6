package portabletext

func span(text string, marks ...string) Span {
	return Span{Text: text, Marks: marks}
}

func textBlock(style string, spans ...Span) *TextBlock {
	return &TextBlock{Style: style, Children: spans}
}

func listItem(kind ListKind, level int, text string) *ListItemBlock {
	return &ListItemBlock{
		TextBlock: TextBlock{Style: "normal", Children: []Span{span(text)}},
		Kind:      kind,
		Level:     level,
	}
}

func items(nodes ...Node) []Node {
	return nodes
}

func container(typ string, children ...Node) Node {
	return ContainerNode(typ, children...)
}

func text(s string) Node {
	return TextNode(s)
}

func withProps(n Node, props map[string]any) Node {
	n.Props = props
	return n
}
