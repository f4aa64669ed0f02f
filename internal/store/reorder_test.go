package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanInsertRanks_FastPath(t *testing.T) {
	rest := []Sibling{{ID: "a", Rank: "9"}, {ID: "b", Rank: "i"}, {ID: "c", Rank: "r"}}

	plan, err := PlanInsertRanks(rest, []string{"x"}, 1)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"x": "d"}, plan.Ranks)
	require.Empty(t, plan.Rebalanced)

	plan, err = PlanInsertRanks(rest, []string{"x"}, 99)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"x": "v"}, plan.Ranks)

	plan, err = PlanInsertRanks(rest, []string{"x"}, -1)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"x": "v"}, plan.Ranks, "negative index appends")
}

func TestPlanInsertRanks_SeveralBlocksKeepOrder(t *testing.T) {
	rest := []Sibling{{ID: "a", Rank: "9"}, {ID: "b", Rank: "i"}}

	plan, err := PlanInsertRanks(rest, []string{"x", "y"}, 1)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"x": "d", "y": "f"}, plan.Ranks)
}

func TestPlanInsertRanks_RebalancesAroundDuplicates(t *testing.T) {
	rest := []Sibling{{ID: "a", Rank: "i"}, {ID: "b", Rank: "i"}}

	plan, err := PlanInsertRanks(rest, []string{"x"}, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, plan.Rebalanced)
	require.Equal(t, map[string]string{"a": "9", "x": "d"}, plan.Ranks)
	require.Less(t, plan.Ranks["x"], "i")
}

func TestPlanInsertRanks_PrefixNeighbours(t *testing.T) {
	rest := []Sibling{{ID: "a", Rank: "y"}, {ID: "b", Rank: "y0"}}

	plan, err := PlanInsertRanks(rest, []string{"x"}, 1)
	require.NoError(t, err)
	require.NotEmpty(t, plan.Rebalanced)

	final := map[string]string{"a": "y", "b": "y0"}
	for id, r := range plan.Ranks {
		final[id] = r
	}
	require.Less(t, final["a"], final["x"])
	require.Less(t, final["x"], final["b"])
}

func TestSortSiblings_TieBreaksByID(t *testing.T) {
	sibs := []Sibling{{ID: "b", Rank: "i"}, {ID: "c", Rank: "d"}, {ID: "a", Rank: "i"}}
	SortSiblings(sibs)
	require.Equal(t, []Sibling{{ID: "c", Rank: "d"}, {ID: "a", Rank: "i"}, {ID: "b", Rank: "i"}}, sibs)
}
