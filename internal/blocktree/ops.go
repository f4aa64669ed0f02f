package blocktree

import "listview/internal/model"

// The helpers below mutate the tree they are given. Callers own that tree:
// the drag engine only ever hands them its private copy.

// Clone deep-copies a tree. Attribute maps are copied one level deep.
func Clone(blocks []model.Block) []model.Block {
	if blocks == nil {
		return nil
	}
	out := make([]model.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b
		if b.Attributes != nil {
			attrs := make(map[string]any, len(b.Attributes))
			for k, v := range b.Attributes {
				attrs[k] = v
			}
			out[i].Attributes = attrs
		}
		out[i].InnerBlocks = Clone(b.InnerBlocks)
	}
	return out
}

// Find returns a pointer to the block with the given id.
func Find(blocks []model.Block, id string) (*model.Block, bool) {
	for i := range blocks {
		if blocks[i].ClientID == id {
			return &blocks[i], true
		}
		if b, ok := Find(blocks[i].InnerBlocks, id); ok {
			return b, true
		}
	}
	return nil, false
}

// Locate returns the parent id ("" for top level) and sibling index of id.
func Locate(blocks []model.Block, id string) (parentID string, index int, ok bool) {
	var walk func(blocks []model.Block, parent string) bool
	walk = func(blocks []model.Block, parent string) bool {
		for i := range blocks {
			if blocks[i].ClientID == id {
				parentID, index = parent, i
				return true
			}
			if walk(blocks[i].InnerBlocks, blocks[i].ClientID) {
				return true
			}
		}
		return false
	}
	ok = walk(blocks, "")
	return parentID, index, ok
}

// Siblings returns the ordered children of parentID ("" for top level).
func Siblings(blocks []model.Block, parentID string) []model.Block {
	if parentID == "" {
		return blocks
	}
	p, ok := Find(blocks, parentID)
	if !ok {
		return nil
	}
	return p.InnerBlocks
}

// Ancestors returns the ancestor chain of id, outermost first, not including
// id itself.
func Ancestors(blocks []model.Block, id string) ([]string, bool) {
	var path []string
	var walk func(blocks []model.Block) bool
	walk = func(blocks []model.Block) bool {
		for i := range blocks {
			if blocks[i].ClientID == id {
				return true
			}
			path = append(path, blocks[i].ClientID)
			if walk(blocks[i].InnerBlocks) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if !walk(blocks) {
		return nil, false
	}
	if path == nil {
		path = []string{}
	}
	return path, true
}

// Contains reports whether id is ancestorID itself or one of its descendants.
func Contains(blocks []model.Block, ancestorID, id string) bool {
	a, ok := Find(blocks, ancestorID)
	if !ok {
		return false
	}
	if ancestorID == id {
		return true
	}
	_, ok = Find(a.InnerBlocks, id)
	return ok
}

// Remove detaches id from the tree and returns the new top-level slice along
// with the removed block.
func Remove(blocks []model.Block, id string) ([]model.Block, model.Block, bool) {
	for i := range blocks {
		if blocks[i].ClientID == id {
			removed := blocks[i]
			out := make([]model.Block, 0, len(blocks)-1)
			out = append(out, blocks[:i]...)
			out = append(out, blocks[i+1:]...)
			return out, removed, true
		}
		if inner, removed, ok := Remove(blocks[i].InnerBlocks, id); ok {
			blocks[i].InnerBlocks = inner
			return blocks, removed, true
		}
	}
	return blocks, model.Block{}, false
}

// Insert places b under parentID ("" for top level) at index. A negative or
// out-of-range index appends.
func Insert(blocks []model.Block, parentID string, index int, b model.Block) ([]model.Block, bool) {
	if parentID == "" {
		return insertAt(blocks, index, b), true
	}
	p, ok := Find(blocks, parentID)
	if !ok {
		return blocks, false
	}
	p.InnerBlocks = insertAt(p.InnerBlocks, index, b)
	return blocks, true
}

func insertAt(blocks []model.Block, index int, b model.Block) []model.Block {
	if index < 0 || index > len(blocks) {
		index = len(blocks)
	}
	out := make([]model.Block, 0, len(blocks)+1)
	out = append(out, blocks[:index]...)
	out = append(out, b)
	out = append(out, blocks[index:]...)
	return out
}

// Walk visits blocks depth-first in document order. Returning false from fn
// skips the block's children.
func Walk(blocks []model.Block, fn func(b model.Block, parentID string, depth int) bool) {
	var walk func(blocks []model.Block, parent string, depth int)
	walk = func(blocks []model.Block, parent string, depth int) {
		for _, b := range blocks {
			if fn(b, parent, depth) {
				walk(b.InnerBlocks, b.ClientID, depth+1)
			}
		}
	}
	walk(blocks, "", 0)
}
