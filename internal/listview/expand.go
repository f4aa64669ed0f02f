package listview

import "listview/internal/model"

// ExpandedState records explicit expand/collapse choices per block. Blocks
// without an entry fall back to the view's expand-by-default flag.
type ExpandedState map[string]bool

type ExpandAction struct {
	Type     string // "expand" | "collapse"
	ClientID string
}

const (
	ActionExpand   = "expand"
	ActionCollapse = "collapse"
)

// Reduce applies one action. Unknown actions and empty ids are no-ops.
// Collapsing a parent leaves its children's entries alone so re-expanding
// restores them.
func (s ExpandedState) Reduce(a ExpandAction) {
	if a.ClientID == "" {
		return
	}
	switch a.Type {
	case ActionExpand:
		s[a.ClientID] = true
	case ActionCollapse:
		s[a.ClientID] = false
	}
}

func (s ExpandedState) Expand(id string)   { s.Reduce(ExpandAction{Type: ActionExpand, ClientID: id}) }
func (s ExpandedState) Collapse(id string) { s.Reduce(ExpandAction{Type: ActionCollapse, ClientID: id}) }

func (s ExpandedState) IsExpanded(id string, expandByDefault bool) bool {
	if v, ok := s[id]; ok {
		return v
	}
	return expandByDefault
}

// Toggle flips id relative to its effective state.
func (s ExpandedState) Toggle(id string, expandByDefault bool) {
	if s.IsExpanded(id, expandByDefault) {
		s.Collapse(id)
		return
	}
	s.Expand(id)
}

// SetAll records the same state for every block with children.
func (s ExpandedState) SetAll(tree []model.Block, expanded bool) {
	var walk func(blocks []model.Block)
	walk = func(blocks []model.Block) {
		for _, b := range blocks {
			if len(b.InnerBlocks) == 0 {
				continue
			}
			s[b.ClientID] = expanded
			walk(b.InnerBlocks)
		}
	}
	walk(tree)
}

// Snapshot copies the state so it can be persisted.
func (s ExpandedState) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
