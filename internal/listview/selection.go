package listview

import (
	"context"
	"fmt"

	"listview/internal/model"
)

type SelectionRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GetCommonDepthClientIDs moves the deeper end of a range up its ancestor
// chain until both ends sit at the same depth.
//
// Parents are ordered outermost first and do not include the id itself.
func GetCommonDepthClientIDs(startID, endID string, startParents, endParents []string) SelectionRange {
	startPath := append(append([]string{}, startParents...), startID)
	endPath := append(append([]string{}, endParents...), endID)
	depth := min(len(startPath), len(endPath)) - 1
	return SelectionRange{Start: startPath[depth], End: endPath[depth]}
}

// SelectionStore is the slice of the external store selection needs.
type SelectionStore interface {
	BlockParents(id string) []string
	Selection() model.Selection
	SelectBlock(ctx context.Context, id string) error
	MultiSelect(ctx context.Context, startID, endID string) error
}

// Selector turns focus and range gestures into store selection calls.
type Selector struct {
	Store SelectionStore
}

func (s Selector) Select(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.Store.SelectBlock(ctx, id)
}

// Extend grows the selection from its anchor to id. With nothing selected it
// behaves like Select.
func (s Selector) Extend(ctx context.Context, id string) (SelectionRange, error) {
	cur := s.Store.Selection()
	if cur.Empty() {
		if err := s.Select(ctx, id); err != nil {
			return SelectionRange{}, err
		}
		return SelectionRange{Start: id, End: id}, nil
	}
	r := GetCommonDepthClientIDs(cur.Start, id, s.Store.BlockParents(cur.Start), s.Store.BlockParents(id))
	if r.Start == r.End {
		if err := s.Store.SelectBlock(ctx, r.Start); err != nil {
			return SelectionRange{}, fmt.Errorf("select %s: %w", r.Start, err)
		}
		return r, nil
	}
	if err := s.Store.MultiSelect(ctx, r.Start, r.End); err != nil {
		return SelectionRange{}, fmt.Errorf("multi-select %s..%s: %w", r.Start, r.End, err)
	}
	return r, nil
}
