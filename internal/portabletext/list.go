package portabletext

// listNode builds a list container for a run of list items. The list type
// comes from the first item of the run.
func listNode(items []*ListItemBlock) Node {
	return ContainerNode(ListNodeType(items[0].Kind), nestListItems(items)...)
}

// nestListItems turns a flat run of leveled list items into list_item nodes.
//
// Every item absorbs the items directly after it that sit at a deeper level.
// Those are nested recursively into a sublist, and the sublist is wrapped in
// its own list_item appended to the item's content, so nested lists end up
// inside an item rather than beside it. Levels are taken as given.
func nestListItems(items []*ListItemBlock) []Node {
	nodes := make([]Node, 0, len(items))

	for i := 0; i < len(items); i++ {
		current := items[i]
		level := current.EffectiveLevel()
		content := nestSpans(current.Children, current.MarkDefs)

		end := i + 1
		for end < len(items) && items[end].EffectiveLevel() > level {
			end++
		}

		if deeper := items[i+1 : end]; len(deeper) > 0 {
			content = append(content, ContainerNode(NodeListItem, listNode(deeper)))
		}

		nodes = append(nodes, ContainerNode(NodeListItem, content...))
		i = end - 1
	}

	return nodes
}
