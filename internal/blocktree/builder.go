// Package blocktree turns a nested block document into the id tree the list
// view navigates, and answers structural questions about it.
package blocktree

import (
	"listview/internal/model"
)

// Source is the read side of the external block-document store.
//
// Revision must change whenever Blocks would return different content.
type Source interface {
	Blocks() []model.Block
	Revision() uint64
}

// BuildOptions restricts a build to a subtree.
type BuildOptions struct {
	// RootClientID limits the tree to the inner blocks of this block. Empty
	// means the whole document.
	RootClientID string
	// Depth > 0 truncates inner blocks below that many levels.
	Depth int
	// Override, when non-nil, is used instead of Source.Blocks().
	Override []model.Block
}

type buildKey struct {
	rev          uint64
	root         string
	depth        int
	overrideHead *model.Block
	overrideLen  int
	override     bool
}

// Builder memoizes the last built tree so repeated builds over an unchanged
// source return the identical slice.
type Builder struct {
	src Source

	built bool
	key   buildKey
	last  []model.Block
}

func NewBuilder(src Source) *Builder {
	return &Builder{src: src}
}

// Build returns the ordered top-level blocks under opts.RootClientID.
// An unknown root yields an empty tree.
func (b *Builder) Build(opts BuildOptions) []model.Block {
	k := buildKey{root: opts.RootClientID, depth: opts.Depth}
	if b.src != nil {
		k.rev = b.src.Revision()
	}
	if opts.Override != nil {
		k.override = true
		k.overrideLen = len(opts.Override)
		if len(opts.Override) > 0 {
			k.overrideHead = &opts.Override[0]
		}
	}
	if b.built && b.key == k {
		return b.last
	}

	var blocks []model.Block
	switch {
	case opts.Override != nil:
		blocks = opts.Override
	case b.src != nil:
		blocks = b.src.Blocks()
	}

	out := restrict(blocks, opts.RootClientID)
	if opts.Depth > 0 {
		out = truncate(out, opts.Depth)
	}

	b.built = true
	b.key = k
	b.last = out
	return out
}

func restrict(blocks []model.Block, rootID string) []model.Block {
	if rootID == "" {
		if blocks == nil {
			return []model.Block{}
		}
		return blocks
	}
	root, ok := Find(blocks, rootID)
	if !ok || root.InnerBlocks == nil {
		return []model.Block{}
	}
	return root.InnerBlocks
}

func truncate(blocks []model.Block, depth int) []model.Block {
	out := make([]model.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b
		if depth <= 1 {
			out[i].InnerBlocks = nil
			continue
		}
		if len(b.InnerBlocks) > 0 {
			out[i].InnerBlocks = truncate(b.InnerBlocks, depth-1)
		}
	}
	return out
}
