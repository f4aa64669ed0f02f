package listview

import (
	"testing"

	"listview/internal/model"

	"github.com/stretchr/testify/require"
)

func TestExpandedState_ReduceNoCascade(t *testing.T) {
	s := ExpandedState{}
	s.Collapse("child")
	s.Expand("parent")
	s.Collapse("parent")

	require.False(t, s.IsExpanded("parent", true))
	require.False(t, s.IsExpanded("child", true), "collapsing the parent keeps the child entry")

	s.Expand("parent")
	require.True(t, s.IsExpanded("parent", false))
	require.False(t, s.IsExpanded("child", true))
}

func TestExpandedState_EmptyIDIsNoop(t *testing.T) {
	s := ExpandedState{}
	s.Expand("")
	s.Collapse("")
	s.Reduce(ExpandAction{Type: "bogus", ClientID: "x"})
	require.Empty(t, s)
}

func TestExpandedState_DefaultAndToggle(t *testing.T) {
	s := ExpandedState{}
	require.True(t, s.IsExpanded("x", true))
	require.False(t, s.IsExpanded("x", false))

	s.Toggle("x", true)
	require.False(t, s.IsExpanded("x", true))
	s.Toggle("x", true)
	require.True(t, s.IsExpanded("x", false))
}

func TestExpandedState_SetAllSkipsLeaves(t *testing.T) {
	tree := []model.Block{
		{ClientID: "a"},
		{ClientID: "b", InnerBlocks: []model.Block{
			{ClientID: "b1", InnerBlocks: []model.Block{{ClientID: "b1x"}}},
		}},
	}
	s := ExpandedState{}
	s.SetAll(tree, false)
	require.Equal(t, map[string]bool{"b": false, "b1": false}, s.Snapshot())

	snap := s.Snapshot()
	snap["b"] = true
	require.False(t, s["b"], "snapshot is a copy")
}
