package portabletext

// blockGroup is either a single non-list block or a run of list items of one
// kind.
type blockGroup struct {
	block Block
	list  []*ListItemBlock
}

func (g blockGroup) isList() bool {
	return len(g.list) > 0
}

// groupListItems collapses consecutive list items of the same kind into one
// group. Level plays no part here; a kind change always starts a new group.
func groupListItems(blocks []Block) []blockGroup {
	groups := make([]blockGroup, 0, len(blocks))

	for i := 0; i < len(blocks); i++ {
		first, ok := blocks[i].(*ListItemBlock)
		if !ok {
			groups = append(groups, blockGroup{block: blocks[i]})
			continue
		}

		run := []*ListItemBlock{first}
		for i+1 < len(blocks) {
			next, ok := blocks[i+1].(*ListItemBlock)
			if !ok || next.Kind != first.Kind {
				break
			}
			run = append(run, next)
			i++
		}
		groups = append(groups, blockGroup{list: run})
	}

	return groups
}
