package blocktree

import (
	"testing"

	"listview/internal/model"

	"github.com/stretchr/testify/require"
)

// fixture:
//
//	a
//	b
//	  b1
//	  b2
//	    b2x
//	c
func fixture() []model.Block {
	return []model.Block{
		{ClientID: "a", Name: "core/paragraph"},
		{ClientID: "b", Name: "core/group", InnerBlocks: []model.Block{
			{ClientID: "b1", Name: "core/paragraph"},
			{ClientID: "b2", Name: "core/group", InnerBlocks: []model.Block{
				{ClientID: "b2x", Name: "core/paragraph"},
			}},
		}},
		{ClientID: "c", Name: "core/paragraph"},
	}
}

type fakeSource struct {
	blocks []model.Block
	rev    uint64
	reads  int
}

func (s *fakeSource) Blocks() []model.Block {
	s.reads++
	return s.blocks
}

func (s *fakeSource) Revision() uint64 { return s.rev }

func TestBuilder_ReturnsSameSliceWhenUnchanged(t *testing.T) {
	src := &fakeSource{blocks: fixture(), rev: 1}
	b := NewBuilder(src)

	first := b.Build(BuildOptions{})
	second := b.Build(BuildOptions{})
	require.Len(t, first, 3)
	require.Same(t, &first[0], &second[0])
	require.Equal(t, 1, src.reads)

	src.rev = 2
	third := b.Build(BuildOptions{})
	require.Equal(t, 2, src.reads)
	require.Equal(t, first, third)
}

func TestBuilder_RootChangeRebuilds(t *testing.T) {
	src := &fakeSource{blocks: fixture(), rev: 1}
	b := NewBuilder(src)

	whole := b.Build(BuildOptions{})
	sub := b.Build(BuildOptions{RootClientID: "b"})
	require.Len(t, whole, 3)
	require.Equal(t, []string{"b1", "b2"}, ids(sub))

	again := b.Build(BuildOptions{RootClientID: "b"})
	require.Same(t, &sub[0], &again[0])
}

func TestBuilder_UnknownRootIsEmpty(t *testing.T) {
	b := NewBuilder(&fakeSource{blocks: fixture(), rev: 1})
	got := b.Build(BuildOptions{RootClientID: "missing"})
	require.NotNil(t, got)
	require.Empty(t, got)

	leaf := b.Build(BuildOptions{RootClientID: "a"})
	require.NotNil(t, leaf)
	require.Empty(t, leaf)
}

func TestBuilder_DepthTruncatesCopy(t *testing.T) {
	src := &fakeSource{blocks: fixture(), rev: 1}
	b := NewBuilder(src)

	got := b.Build(BuildOptions{Depth: 2})
	g, ok := Find(got, "b2")
	require.True(t, ok)
	require.Empty(t, g.InnerBlocks)

	orig, ok := Find(src.blocks, "b2")
	require.True(t, ok)
	require.Len(t, orig.InnerBlocks, 1, "source must not be mutated")
}

func TestBuilder_OverrideIsKeyedByIdentity(t *testing.T) {
	b := NewBuilder(&fakeSource{blocks: fixture(), rev: 1})
	override := []model.Block{{ClientID: "x"}, {ClientID: "y"}}

	first := b.Build(BuildOptions{Override: override})
	second := b.Build(BuildOptions{Override: override})
	require.Equal(t, []string{"x", "y"}, ids(first))
	require.Same(t, &first[0], &second[0])

	other := []model.Block{{ClientID: "z"}}
	require.Equal(t, []string{"z"}, ids(b.Build(BuildOptions{Override: other})))
}

func TestCountBlocks(t *testing.T) {
	tree := fixture()
	b := tree[1]

	cases := []struct {
		name     string
		expanded map[string]bool
		dragged  map[string]bool
		def      bool
		want     int
	}{
		{name: "leaf", def: true, want: 1},
		{name: "all expanded by default", def: true, want: 4},
		{name: "collapsed by default", def: false, want: 1},
		{name: "explicitly collapsed", expanded: map[string]bool{"b": false}, def: true, want: 1},
		{name: "inner collapsed", expanded: map[string]bool{"b2": false}, def: true, want: 3},
		{name: "outer expanded only", expanded: map[string]bool{"b": true}, def: false, want: 3},
		{name: "dragged root", dragged: map[string]bool{"b": true}, def: true, want: 0},
		{name: "dragged child subtree", dragged: map[string]bool{"b2": true}, def: true, want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			node := b
			if tc.name == "leaf" {
				node = tree[0]
			}
			require.Equal(t, tc.want, CountBlocks(node, tc.expanded, tc.dragged, tc.def))
		})
	}
}

func TestCountBlocks_DraggedIgnoresExpansion(t *testing.T) {
	b := fixture()[1]
	dragged := map[string]bool{"b": true}
	require.Zero(t, CountBlocks(b, map[string]bool{"b": true}, dragged, true))
	require.Zero(t, CountBlocks(b, map[string]bool{"b": false}, dragged, false))
}

func TestBlockIndexes_DenseAndExpansionAware(t *testing.T) {
	tree := fixture()

	all := BlockIndexes(tree, nil, true)
	require.Equal(t, map[string]int{"a": 0, "b": 1, "b1": 2, "b2": 3, "b2x": 4, "c": 5}, all)

	collapsed := BlockIndexes(tree, map[string]bool{"b2": false}, true)
	require.Equal(t, map[string]int{"a": 0, "b": 1, "b1": 2, "b2": 3, "c": 4}, collapsed)

	none := BlockIndexes(tree, nil, false)
	require.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, none)
}

func TestLocateAndAncestors(t *testing.T) {
	tree := fixture()

	parent, idx, ok := Locate(tree, "b2x")
	require.True(t, ok)
	require.Equal(t, "b2", parent)
	require.Equal(t, 0, idx)

	parent, idx, ok = Locate(tree, "c")
	require.True(t, ok)
	require.Equal(t, "", parent)
	require.Equal(t, 2, idx)

	anc, ok := Ancestors(tree, "b2x")
	require.True(t, ok)
	require.Equal(t, []string{"b", "b2"}, anc)

	anc, ok = Ancestors(tree, "a")
	require.True(t, ok)
	require.Empty(t, anc)

	_, ok = Ancestors(tree, "nope")
	require.False(t, ok)

	require.True(t, Contains(tree, "b", "b2x"))
	require.True(t, Contains(tree, "b", "b"))
	require.False(t, Contains(tree, "b2", "b1"))
}

func TestRemoveInsert_OnClone(t *testing.T) {
	orig := fixture()
	tree := Clone(orig)

	tree, removed, ok := Remove(tree, "b1")
	require.True(t, ok)
	require.Equal(t, "b1", removed.ClientID)

	tree, ok = Insert(tree, "", 1, removed)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b1", "b", "c"}, ids(tree))

	tree, ok = Insert(tree, "b2", -1, model.Block{ClientID: "n"})
	require.True(t, ok)
	b2, _ := Find(tree, "b2")
	require.Equal(t, []string{"b2x", "n"}, ids(b2.InnerBlocks))

	_, ok = Insert(tree, "missing", 0, model.Block{ClientID: "q"})
	require.False(t, ok)

	// The original is untouched.
	ob, _ := Find(orig, "b")
	require.Equal(t, []string{"b1", "b2"}, ids(ob.InnerBlocks))
}

func TestWalk_SkipsChildrenWhenFalse(t *testing.T) {
	var seen []string
	Walk(fixture(), func(b model.Block, _ string, _ int) bool {
		seen = append(seen, b.ClientID)
		return b.ClientID != "b2"
	})
	require.Equal(t, []string{"a", "b", "b1", "b2", "c"}, seen)
}

func ids(blocks []model.Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.ClientID)
	}
	return out
}
