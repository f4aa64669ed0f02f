package store

import (
	"listview/internal/blocktree"
	"listview/internal/model"
)

// SelectedIDs resolves a selection to its blocks: the contiguous run of
// siblings between start and end, in document order, in either direction.
func SelectedIDs(tree []model.Block, sel model.Selection) []string {
	if sel.Empty() {
		return nil
	}
	parent, i, ok := blocktree.Locate(tree, sel.Start)
	if !ok {
		return nil
	}
	if !sel.Multi() {
		return []string{sel.Start}
	}
	endParent, j, ok := blocktree.Locate(tree, sel.End)
	if !ok || endParent != parent {
		return nil
	}
	if i > j {
		i, j = j, i
	}
	sibs := blocktree.Siblings(tree, parent)
	out := make([]string, 0, j-i+1)
	for _, b := range sibs[i : j+1] {
		out = append(out, b.ClientID)
	}
	return out
}

// liftSelection turns a start/end pair into a selection of siblings.
func liftSelection(tree []model.Block, start, end string) (model.Selection, error) {
	startPath, ok := blocktree.Ancestors(tree, start)
	if !ok {
		return model.Selection{}, NotFoundError{Kind: "block", ID: start}
	}
	endPath, ok := blocktree.Ancestors(tree, end)
	if !ok {
		return model.Selection{}, NotFoundError{Kind: "block", ID: end}
	}
	startPath = append(startPath, start)
	endPath = append(endPath, end)

	k := 0
	for k < len(startPath) && k < len(endPath) && startPath[k] == endPath[k] {
		k++
	}
	if k == len(startPath) || k == len(endPath) {
		// One end contains the other.
		id := startPath[k-1]
		return model.Selection{Start: id, End: id}, nil
	}
	return model.Selection{Start: startPath[k], End: endPath[k]}, nil
}
