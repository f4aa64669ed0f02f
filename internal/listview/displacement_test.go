package listview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var letterIndexes = map[string]int{
	"a": 0, "b": 1, "c": 2, "d": 3, "e": 4, "f": 5, "g": 6, "h": 7,
}

func TestGetDragDisplacementValues(t *testing.T) {
	cases := []struct {
		name string
		in   DisplacementInput
		want DisplacementValues
	}{
		{
			name: "dragged row has no values",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropInside,
				ClientID: "f", FirstDraggedIndex: At(5), IsDragged: true,
			},
			want: DisplacementValues{},
		},
		{
			name: "row after target and after dragged stays put",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropBottom,
				ClientID: "h", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagTrue, IsNesting: FlagFalse},
		},
		{
			name: "row between target and dragged moves down",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropBottom,
				ClientID: "d", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementDown, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "row between dragged and target moves up",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(7), DropPosition: DropTop,
				ClientID: "d", FirstDraggedIndex: At(2),
			},
			want: DisplacementValues{Displacement: DisplacementUp, IsAfterDraggedBlocks: FlagTrue, IsNesting: FlagFalse},
		},
		{
			name: "row at the target index when dragging down stays put",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(4), DropPosition: DropTop,
				ClientID: "e", FirstDraggedIndex: At(2),
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagTrue, IsNesting: FlagFalse},
		},
		{
			name: "row before dragged and before target stays put",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropBottom,
				ClientID: "a", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "row just above an inside drop nests",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(1), DropPosition: DropInside,
				ClientID: "a", FirstDraggedIndex: At(6),
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagTrue},
		},
		{
			name: "row just above a bottom drop does not nest",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(1), DropPosition: DropBottom,
				ClientID: "a", FirstDraggedIndex: At(6),
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "null target closes the gap after the dragged row",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: Null(),
				ClientID: "h", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementUp, IsAfterDraggedBlocks: FlagTrue, IsNesting: FlagFalse},
		},
		{
			name: "null target leaves rows before the dragged row",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: Null(),
				ClientID: "b", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "null target includes the first dragged index itself",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: Null(),
				ClientID: "f", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementUp, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "external drop leaves rows before the target",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropTop,
				ClientID: "b",
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "external drop pushes rows at and after the target down",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropTop,
				ClientID: "h",
			},
			want: DisplacementValues{Displacement: DisplacementDown, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "external drop on the target row itself",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), DropPosition: DropTop,
				ClientID: "d",
			},
			want: DisplacementValues{Displacement: DisplacementDown, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "null target without a drag",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: Null(), ClientID: "c",
			},
			want: DisplacementValues{Displacement: DisplacementNormal, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "undefined target without a drag",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, ClientID: "c",
			},
			want: DisplacementValues{Displacement: DisplacementUndefined, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
		{
			name: "undefined target during a drag",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, ClientID: "h", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementUndefined, IsAfterDraggedBlocks: FlagTrue, IsNesting: FlagFalse},
		},
		{
			name: "row without an index",
			in: DisplacementInput{
				BlockIndexes: letterIndexes, DropTargetIndex: At(3), ClientID: "zz", FirstDraggedIndex: At(5),
			},
			want: DisplacementValues{Displacement: DisplacementUndefined, IsAfterDraggedBlocks: FlagFalse, IsNesting: FlagFalse},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, GetDragDisplacementValues(tc.in))
		})
	}
}

func TestGetDragDisplacementValues_DraggedAlwaysUndefined(t *testing.T) {
	targets := []Index{Undefined(), Null(), At(0), At(3), At(8)}
	firsts := []Index{Undefined(), At(0), At(5)}
	for _, target := range targets {
		for _, first := range firsts {
			for _, pos := range []DropPosition{DropTop, DropBottom, DropInside} {
				got := GetDragDisplacementValues(DisplacementInput{
					BlockIndexes:      letterIndexes,
					DropTargetIndex:   target,
					DropPosition:      pos,
					ClientID:          "c",
					FirstDraggedIndex: first,
					IsDragged:         true,
				})
				require.Equal(t, DisplacementUndefined, got.Displacement, "target=%s first=%s", target, first)
				require.Equal(t, FlagUndefined, got.IsAfterDraggedBlocks)
				require.Equal(t, FlagUndefined, got.IsNesting)
			}
		}
	}
}

func TestIndex(t *testing.T) {
	require.True(t, Undefined().IsUndefined())
	require.True(t, Null().IsNull())
	n, ok := At(4).Value()
	require.True(t, ok)
	require.Equal(t, 4, n)
	_, ok = Null().Value()
	require.False(t, ok)
	require.Equal(t, "null", Null().String())
	require.Equal(t, "undefined", Index{}.String())
}
