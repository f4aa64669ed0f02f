// Package listview is the outline engine behind the block list view:
// row layout, expand/collapse, drag displacement, drag reconciliation,
// selection ranges and windowed rendering.
package listview

import (
	"context"
	"io"

	"listview/internal/blocktree"
	"listview/internal/model"

	"github.com/sirupsen/logrus"
)

// BlockStore is the external block-document store as seen by the view.
type BlockStore interface {
	blocktree.Source
	Mover
	SelectionStore
	SelectedIDs() []string
}

type Config struct {
	ExpandByDefault bool
	RowHeight       int
	NestThreshold   int
	Overscan        int
	RootClientID    string
	Depth           int
}

// Context is the shared state every part of one view instance works from.
type Context struct {
	Store    BlockStore
	Expanded ExpandedState
	Config   Config
	Log      logrus.FieldLogger
}

type dropIndicator struct {
	target   Index
	position DropPosition
}

// View assembles rows from the store, the expand state and the drag engine.
type View struct {
	ctx     Context
	builder *blocktree.Builder
	engine  *Engine
	drop    dropIndicator

	fed    bool
	fedRev uint64
}

func NewView(c Context) *View {
	if c.Expanded == nil {
		c.Expanded = ExpandedState{}
	}
	if c.Config.RowHeight <= 0 {
		c.Config.RowHeight = DefaultRowHeight
	}
	if c.Config.NestThreshold <= 0 {
		c.Config.NestThreshold = DefaultNestThreshold
	}
	if c.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Log = l
	}
	v := &View{
		ctx:     c,
		builder: blocktree.NewBuilder(c.Store),
	}
	var mover Mover
	if c.Store != nil {
		mover = c.Store
		if c.Config.RootClientID != "" {
			mover = rootedMover{Mover: c.Store, root: c.Config.RootClientID}
		}
	}
	v.engine = NewEngine(mover, c.Expanded, EngineConfig{
		RowHeight:       float64(c.Config.RowHeight),
		NestThreshold:   float64(c.Config.NestThreshold),
		ExpandByDefault: c.Config.ExpandByDefault,
		Log:             c.Log.WithField("component", "drag"),
	})
	v.Refresh()
	return v
}

// rootedMover maps the engine's top level onto the view's root block.
type rootedMover struct {
	Mover
	root string
}

func (m rootedMover) MoveBlocksToPosition(ctx context.Context, ids []string, from, to string, index int) error {
	if from == "" {
		from = m.root
	}
	if to == "" {
		to = m.root
	}
	return m.Mover.MoveBlocksToPosition(ctx, ids, from, to, index)
}

func (v *View) Engine() *Engine { return v.engine }

func (v *View) Expanded() ExpandedState { return v.ctx.Expanded }

func (v *View) Config() Config { return v.ctx.Config }

func (v *View) Selector() Selector { return Selector{Store: v.ctx.Store} }

func (v *View) Store() BlockStore { return v.ctx.Store }

// SourceTree is the store's tree, restricted to the configured root and depth.
func (v *View) SourceTree() []model.Block { return v.build() }

func (v *View) IsExpanded(id string) bool {
	return v.ctx.Expanded.IsExpanded(id, v.ctx.Config.ExpandByDefault)
}

func (v *View) ClearDropIndicator() { v.drop = dropIndicator{} }

func (v *View) DropIndicator() (Index, DropPosition) { return v.drop.target, v.drop.position }

func (v *View) build() []model.Block {
	return v.builder.Build(blocktree.BuildOptions{
		RootClientID: v.ctx.Config.RootClientID,
		Depth:        v.ctx.Config.Depth,
	})
}

// Refresh pulls the latest store tree into the engine. Call it after every
// store change; an unchanged revision is not fed again.
func (v *View) Refresh() {
	var rev uint64
	if v.ctx.Store != nil {
		rev = v.ctx.Store.Revision()
	}
	if v.fed && rev == v.fedRev {
		return
	}
	v.fed = true
	v.fedRev = rev
	v.engine.SetSourceTree(v.build())
}

// ResolveDrop reports the result of a PendingMove commit. A store that
// accepted the move without publishing a new revision has nothing more to
// send, so its current tree ends the drop.
func (v *View) ResolveDrop(err error) {
	v.engine.ResolveDrop(err)
	if v.engine.State() != StateResolvingDrop {
		return
	}
	v.fed = false
	v.Refresh()
}

func (v *View) Expand(id string) { v.ctx.Expanded.Expand(id) }

func (v *View) Collapse(id string) { v.ctx.Expanded.Collapse(id) }

// SetDropIndicator sets the drop target used for displacement when the drag
// is not tracked by the engine (for example a file dragged in from outside).
func (v *View) SetDropIndicator(target Index, position DropPosition) {
	v.drop = dropIndicator{target: target, position: position}
}

// Row is everything the renderer needs for one visible row.
type Row struct {
	ClientID      string `json:"clientId"`
	ParentID      string `json:"parentId,omitempty"`
	Name          string `json:"name,omitempty"`
	Label         string `json:"label"`
	Level         int    `json:"level"`
	PositionInSet int    `json:"positionInSet"`
	SetSize       int    `json:"setSize"`
	Index         int    `json:"index"`
	Position      int    `json:"position"`

	HasChildren      bool `json:"hasChildren"`
	IsExpanded       bool `json:"isExpanded"`
	IsDragged        bool `json:"isDragged"`
	IsSelected       bool `json:"isSelected"`
	IsBranchSelected bool `json:"isBranchSelected"`
	Render           bool `json:"render"`

	DisplacementValues

	Block model.Block `json:"-"`
}

// RowCount is the number of counted rows (dragged rows excluded).
func (v *View) RowCount() int {
	n := 0
	dragged := v.engine.DraggedIDs()
	for _, b := range v.engine.Tree() {
		n += blocktree.CountBlocks(b, v.ctx.Expanded, dragged, v.ctx.Config.ExpandByDefault)
	}
	return n
}

// BlockIndexes is the flat index map of the tree currently rendered.
func (v *View) BlockIndexes() map[string]int {
	return blocktree.BlockIndexes(v.engine.Tree(), v.ctx.Expanded, v.ctx.Config.ExpandByDefault)
}

// Rows lays out every visible row. itemInView may be nil to render all rows.
// Rendered rows report their positions to the drag engine.
func (v *View) Rows(itemInView func(position int) bool) []Row {
	tree := v.engine.Tree()
	def := v.ctx.Config.ExpandByDefault
	expanded := v.ctx.Expanded
	dragged := v.engine.DraggedIDs()
	indexes := blocktree.BlockIndexes(tree, expanded, def)

	// Displacement is measured against the store layout, so rows report how
	// far the private copy has shifted them.
	dropIndexes := indexes
	dropTarget, dropPosition := v.drop.target, v.drop.position
	firstDragged := Undefined()
	if id := v.engine.DraggingID(); id != "" {
		dropIndexes = blocktree.BlockIndexes(v.engine.Source(), expanded, def)
		if i, ok := dropIndexes[id]; ok {
			firstDragged = At(i)
		}
		if dropTarget.IsUndefined() {
			dropTarget, dropPosition = v.trackedDrop(dropIndexes)
		}
	}

	selected := map[string]bool{}
	firstSelected := ""
	if v.ctx.Store != nil {
		ids := v.ctx.Store.SelectedIDs()
		for _, id := range ids {
			selected[id] = true
		}
		if len(ids) > 0 {
			firstSelected = ids[0]
		}
	}

	var rows []Row
	var branch func(blocks []model.Block, parent string, level, position int, branchSelected bool) int
	branch = func(blocks []model.Block, parent string, level, position int, branchSelected bool) int {
		for i, b := range blocks {
			isDragged := dragged[b.ClientID]
			hasChildren := len(b.InnerBlocks) > 0
			isExpanded := hasChildren && expanded.IsExpanded(b.ClientID, def)

			row := Row{
				ClientID:         b.ClientID,
				ParentID:         parent,
				Name:             b.Name,
				Label:            b.Label(),
				Level:            level,
				PositionInSet:    i + 1,
				SetSize:          len(blocks),
				Index:            indexes[b.ClientID],
				Position:         position,
				HasChildren:      hasChildren,
				IsExpanded:       isExpanded,
				IsDragged:        isDragged,
				IsSelected:       selected[b.ClientID],
				IsBranchSelected: branchSelected,
				Block:            b,
			}
			row.Render = ShouldRenderRow(RowGate{
				Position:        position,
				IndexInList:     i,
				ListSize:        len(blocks),
				IsDragged:       isDragged,
				IsFirstSelected: b.ClientID == firstSelected,
			}, itemInView)
			row.DisplacementValues = GetDragDisplacementValues(DisplacementInput{
				BlockIndexes:      dropIndexes,
				DropTargetIndex:   dropTarget,
				DropPosition:      dropPosition,
				ClientID:          b.ClientID,
				FirstDraggedIndex: firstDragged,
				IsDragged:         isDragged,
			})
			rows = append(rows, row)

			if row.Render {
				v.engine.ReportPosition(Position{
					ClientID:      b.ClientID,
					Offset:        float64(position * v.ctx.Config.RowHeight),
					DropSibling:   !b.Locked(),
					DropContainer: b.AcceptsChildren(),
					IsLastChild:   i == len(blocks)-1,
				})
			}

			if isExpanded && !isDragged {
				position = branch(b.InnerBlocks, b.ClientID, level+1, position+1, branchSelected || row.IsSelected)
				continue
			}
			position += blocktree.CountBlocks(b, expanded, dragged, def)
		}
		return position
	}
	branch(tree, v.ctx.Config.RootClientID, 1, 0, false)
	return rows
}

// trackedDrop turns the engine's pending move into a drop indicator on the
// store layout. A nest lands inside its new parent; any other move lands
// before the row that now follows the dragged block. No pending move is a
// null target.
func (v *View) trackedDrop(storeIndexes map[string]int) (Index, DropPosition) {
	e := v.engine
	t := e.Target()
	if t == nil {
		return Null(), DropTop
	}
	nested := t.TargetID != "" && t.TargetID != t.OriginalParent &&
		!blocktree.Contains(e.Source(), t.TargetID, t.OriginalParent)
	if nested {
		if i, ok := storeIndexes[t.TargetID]; ok {
			return At(i + 1), DropInside
		}
	}

	def := v.ctx.Config.ExpandByDefault
	seen := false
	next := -1
	blocktree.Walk(e.Tree(), func(b model.Block, _ string, _ int) bool {
		if next >= 0 {
			return false
		}
		if b.ClientID == t.ClientID {
			seen = true
			return false
		}
		if seen {
			if i, ok := storeIndexes[b.ClientID]; ok {
				next = i
				return false
			}
		}
		return v.ctx.Expanded.IsExpanded(b.ClientID, def)
	})
	if next < 0 {
		return At(len(storeIndexes)), DropBottom
	}
	return At(next), DropTop
}
