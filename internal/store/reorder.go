package store

import (
	"errors"
	"sort"
)

// Sibling is one entry of a sibling list as stored.
type Sibling struct {
	ID   string
	Rank string
}

// SortSiblings orders by rank, then id.
func SortSiblings(sibs []Sibling) {
	sort.SliceStable(sibs, func(i, j int) bool {
		if sibs[i].Rank != sibs[j].Rank {
			return sibs[i].Rank < sibs[j].Rank
		}
		return sibs[i].ID < sibs[j].ID
	})
}

// RankPlan is the set of rank writes that realize an insertion.
type RankPlan struct {
	Ranks map[string]string
	// Rebalanced lists siblings other than the moved ones that had to be
	// re-ranked, in final order.
	Rebalanced []string
}

// PlanInsertRanks plans ranks that put moved, in order, at index of rest.
// rest is the sorted target sibling list without the moved blocks; an index
// outside [0, len(rest)] appends.
//
// Only the moved blocks are re-ranked when their neighbours leave room.
// Otherwise the smallest window around the insertion point whose outer
// neighbours are strictly ordered is re-ranked.
func PlanInsertRanks(rest []Sibling, moved []string, index int) (RankPlan, error) {
	if len(moved) == 0 {
		return RankPlan{Ranks: map[string]string{}}, nil
	}
	if index < 0 || index > len(rest) {
		index = len(rest)
	}

	final := make([]Sibling, 0, len(rest)+len(moved))
	final = append(final, rest[:index]...)
	for _, id := range moved {
		final = append(final, Sibling{ID: id})
	}
	final = append(final, rest[index:]...)
	first, last := index, index+len(moved)-1

	for size := len(moved); size <= len(final); size++ {
		for lo := max(0, last-size+1); lo <= first && lo+size <= len(final); lo++ {
			hi := lo + size - 1
			ranks, ok := rankWindow(final, lo, hi)
			if !ok {
				continue
			}
			plan := RankPlan{Ranks: make(map[string]string, size)}
			for i := lo; i <= hi; i++ {
				plan.Ranks[final[i].ID] = ranks[i-lo]
				if i < first || i > last {
					plan.Rebalanced = append(plan.Rebalanced, final[i].ID)
				}
			}
			return plan, nil
		}
	}
	return RankPlan{}, errors.New("unable to plan ranks")
}

func rankWindow(final []Sibling, lo, hi int) ([]string, bool) {
	lower, upper := "", ""
	if lo > 0 {
		lower = final[lo-1].Rank
	}
	if hi+1 < len(final) {
		upper = final[hi+1].Rank
	}
	if lower != "" && upper != "" && lower >= upper {
		return nil, false
	}
	existing := map[string]bool{}
	for i, s := range final {
		if (i < lo || i > hi) && s.Rank != "" {
			existing[s.Rank] = true
		}
	}
	out := make([]string, 0, hi-lo+1)
	cur := lower
	for i := lo; i <= hi; i++ {
		r, err := RankBetweenUnique(existing, cur, upper)
		if err != nil {
			return nil, false
		}
		existing[r] = true
		out = append(out, r)
		cur = r
	}
	return out, true
}
