package blocktree

import "listview/internal/model"

// CountBlocks returns the number of visible rows contributed by b.
//
// A dragged block (and everything under it) contributes nothing. A collapsed
// block or a leaf contributes one row; an expanded block contributes itself
// plus the visible rows of its children.
func CountBlocks(b model.Block, expanded map[string]bool, dragged map[string]bool, expandByDefault bool) int {
	if dragged[b.ClientID] {
		return 0
	}
	if !isExpanded(expanded, b.ClientID, expandByDefault) {
		return 1
	}
	n := 1
	for _, ch := range b.InnerBlocks {
		n += CountBlocks(ch, expanded, dragged, expandByDefault)
	}
	return n
}

func isExpanded(expanded map[string]bool, id string, def bool) bool {
	if v, ok := expanded[id]; ok {
		return v
	}
	return def
}

// BlockIndexes assigns every rendered row its depth-first position. Children
// of collapsed blocks get no index. A dragged block keeps its own index so
// the rows around it can be measured against it; the map then holds one
// more entry than CountBlocks reports.
func BlockIndexes(tree []model.Block, expanded map[string]bool, expandByDefault bool) map[string]int {
	out := map[string]int{}
	next := 0
	var walk func(blocks []model.Block)
	walk = func(blocks []model.Block) {
		for _, b := range blocks {
			out[b.ClientID] = next
			next++
			if len(b.InnerBlocks) > 0 && isExpanded(expanded, b.ClientID, expandByDefault) {
				walk(b.InnerBlocks)
			}
		}
	}
	walk(tree)
	return out
}
