package store

import (
	"fmt"

	"listview/internal/blocktree"
	"listview/internal/model"
)

// planMove validates a move against the current tree and plans the rank
// writes for it. An empty plan means the move changes nothing.
func planMove(tree []model.Block, rows []blockRow, ids []string, from, to string, index int) (RankPlan, error) {
	moving := make(map[string]bool, len(ids))
	for _, id := range ids {
		if moving[id] {
			return RankPlan{}, InvalidMoveError{Reason: "duplicate block " + id}
		}
		moving[id] = true

		b, ok := blocktree.Find(tree, id)
		if !ok {
			return RankPlan{}, NotFoundError{Kind: "block", ID: id}
		}
		parent, _, _ := blocktree.Locate(tree, id)
		if parent != from {
			return RankPlan{}, InvalidMoveError{Reason: fmt.Sprintf("%s is not a child of %q", id, from)}
		}
		if b.Locked() {
			return RankPlan{}, LockedError{ClientID: id}
		}
	}

	for _, parent := range []string{from, to} {
		if parent == "" {
			continue
		}
		p, ok := blocktree.Find(tree, parent)
		if !ok {
			return RankPlan{}, NotFoundError{Kind: "block", ID: parent}
		}
		if p.Locked() {
			return RankPlan{}, LockedError{ClientID: parent}
		}
	}
	if to != "" {
		for _, id := range ids {
			if blocktree.Contains(tree, id, to) {
				return RankPlan{}, InvalidMoveError{Reason: fmt.Sprintf("cannot move %s into itself", id)}
			}
		}
	}

	var current, rest []Sibling
	for _, r := range rows {
		if r.ParentID != to {
			continue
		}
		s := Sibling{ID: r.ClientID, Rank: r.Rank}
		current = append(current, s)
		if !moving[r.ClientID] {
			rest = append(rest, s)
		}
	}
	SortSiblings(current)
	SortSiblings(rest)

	if index < 0 || index > len(rest) {
		index = len(rest)
	}
	if from == to && sameOrder(current, rest, ids, index) {
		return RankPlan{Ranks: map[string]string{}}, nil
	}
	return PlanInsertRanks(rest, ids, index)
}

func sameOrder(current, rest []Sibling, ids []string, index int) bool {
	final := make([]string, 0, len(current))
	for _, s := range rest[:index] {
		final = append(final, s.ID)
	}
	final = append(final, ids...)
	for _, s := range rest[index:] {
		final = append(final, s.ID)
	}
	if len(final) != len(current) {
		return false
	}
	for i := range final {
		if final[i] != current[i].ID {
			return false
		}
	}
	return true
}
