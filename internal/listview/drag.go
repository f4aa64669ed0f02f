package listview

import (
	"context"
	"io"
	"math"
	"slices"

	"listview/internal/blocktree"
	"listview/internal/model"

	"github.com/sirupsen/logrus"
)

// State is the drag reconciliation state.
type State int

const (
	// StateGlobal renders the store's tree; nothing is in flight.
	StateGlobal State = iota
	// StateLocal renders the engine's private copy while a drag is active.
	StateLocal
	// StateResolvingDrop keeps the private copy on screen until the store
	// has caught up with (or rejected) the committed move.
	StateResolvingDrop
)

func (s State) String() string {
	switch s {
	case StateLocal:
		return "local"
	case StateResolvingDrop:
		return "resolving_drop"
	default:
		return "global"
	}
}

// DragTarget is the pending structural move.
type DragTarget struct {
	ClientID       string `json:"clientId"`
	OriginalParent string `json:"originalParent"`
	TargetID       string `json:"targetId"`
	TargetIndex    int    `json:"targetIndex"`
}

// Position is what a row reports about itself while rendered.
type Position struct {
	ClientID      string
	Offset        float64
	DropSibling   bool
	DropContainer bool
	IsLastChild   bool
}

// Mover commits a move to the external store.
type Mover interface {
	MoveBlocksToPosition(ctx context.Context, ids []string, fromParent, toParent string, index int) error
}

// MoveInput describes pointer movement of the dragged row relative to where
// it is currently laid out.
type MoveInput struct {
	ClientID   string
	Translate  float64
	TranslateX float64
	Velocity   float64
}

type EngineConfig struct {
	RowHeight       float64
	NestThreshold   float64
	ExpandByDefault bool
	Log             logrus.FieldLogger
}

const (
	DefaultRowHeight     = 36
	DefaultNestThreshold = 60
)

// Engine is the drag reconciliation state machine. It is not safe for
// concurrent use; every call is expected on the UI goroutine.
type Engine struct {
	cfg      EngineConfig
	mover    Mover
	expanded ExpandedState
	log      logrus.FieldLogger

	state  State
	source []model.Block
	local  []model.Block

	draggingID     string
	originalParent string
	originalIndex  int
	target         *DragTarget
	positions      map[string]Position

	committed     bool
	sourceChanged bool
}

func NewEngine(mover Mover, expanded ExpandedState, cfg EngineConfig) *Engine {
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = DefaultRowHeight
	}
	if cfg.NestThreshold <= 0 {
		cfg.NestThreshold = DefaultNestThreshold
	}
	if expanded == nil {
		expanded = ExpandedState{}
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{
		cfg:       cfg,
		mover:     mover,
		expanded:  expanded,
		log:       log,
		positions: map[string]Position{},
	}
}

func (e *Engine) State() State { return e.state }

// Target returns a copy of the pending move, or nil.
func (e *Engine) Target() *DragTarget {
	if e.target == nil {
		return nil
	}
	t := *e.target
	return &t
}

func (e *Engine) DraggingID() string { return e.draggingID }

// DraggedIDs returns the ids excluded from row counting.
func (e *Engine) DraggedIDs() map[string]bool {
	if e.draggingID == "" {
		return nil
	}
	return map[string]bool{e.draggingID: true}
}

// SetSourceTree feeds the latest tree from the store. In GLOBAL it simply
// replaces what is rendered; after a committed drop it ends the drag.
func (e *Engine) SetSourceTree(tree []model.Block) {
	e.source = tree
	if e.state != StateResolvingDrop {
		return
	}
	if e.committed {
		e.toGlobal("store caught up")
		return
	}
	e.sourceChanged = true
}

// Source is the last tree fed from the store.
func (e *Engine) Source() []model.Block { return e.source }

// Tree is the tree to render: the private copy while a drag is active or
// resolving, otherwise the store's.
func (e *Engine) Tree() []model.Block {
	if e.state != StateGlobal && e.local != nil {
		return e.local
	}
	return e.source
}

// ReportPosition records a row's own view of where it is and what it accepts.
func (e *Engine) ReportPosition(p Position) {
	if p.ClientID == "" {
		return
	}
	e.positions[p.ClientID] = p
}

func (e *Engine) Positions() map[string]Position {
	out := make(map[string]Position, len(e.positions))
	for k, v := range e.positions {
		out[k] = v
	}
	return out
}

// DragStart forks the store tree and starts a drag of id. It is a no-op
// while another drag is active or resolving.
func (e *Engine) DragStart(id string) bool {
	if e.state != StateGlobal || e.draggingID != "" || id == "" {
		return false
	}
	parent, idx, ok := blocktree.Locate(e.source, id)
	if !ok {
		return false
	}
	e.expanded.Collapse(id)
	e.local = blocktree.Clone(e.source)
	e.draggingID = id
	e.originalParent = parent
	e.originalIndex = idx
	e.target = nil
	e.committed = false
	e.sourceChanged = false
	e.state = StateLocal
	e.log.WithFields(logrus.Fields{"client_id": id, "parent": parent, "index": idx}).Debug("drag start")
	return true
}

// MoveItem previews a swap or nest on the private copy. It reports whether
// the private tree changed.
func (e *Engine) MoveItem(in MoveInput) bool {
	if e.state != StateLocal || in.ClientID == "" || in.ClientID != e.draggingID {
		return false
	}
	if math.Abs(in.Translate) < e.cfg.RowHeight/2 || in.Velocity == 0 {
		return false
	}
	up := in.Velocity < 0

	moved := false
	if math.Abs(in.TranslateX) > e.cfg.NestThreshold {
		if in.TranslateX > 0 {
			moved = e.nestInto(up)
		} else {
			moved = e.outdent(up)
		}
	}
	if !moved {
		moved = e.swapSibling(up)
	}
	if moved {
		e.updateTarget()
	}
	return moved
}

type flatRow struct {
	id     string
	parent string
	block  model.Block
}

func (e *Engine) flatten() []flatRow {
	var out []flatRow
	blocktree.Walk(e.local, func(b model.Block, parent string, _ int) bool {
		out = append(out, flatRow{id: b.ClientID, parent: parent, block: b})
		if b.ClientID == e.draggingID {
			return false
		}
		return e.expanded.IsExpanded(b.ClientID, e.cfg.ExpandByDefault)
	})
	return out
}

func (e *Engine) dropSibling(id string) bool {
	if p, ok := e.positions[id]; ok {
		return p.DropSibling
	}
	return true
}

func (e *Engine) dropContainer(b model.Block) bool {
	if p, ok := e.positions[b.ClientID]; ok {
		return p.DropContainer
	}
	return b.AcceptsChildren()
}

// nestInto re-parents the dragged block under the row it is dragged over.
func (e *Engine) nestInto(up bool) bool {
	rows := e.flatten()
	i := indexOfRow(rows, e.draggingID)
	if i < 0 {
		return false
	}
	j := i + 1
	if up {
		j = i - 1
	}
	if j < 0 || j >= len(rows) {
		return false
	}
	target := rows[j]
	if !e.dropContainer(target.block) {
		return false
	}
	// The row above a first child is its own parent.
	if ancestors, _ := blocktree.Ancestors(e.local, e.draggingID); slices.Contains(ancestors, target.id) {
		return false
	}
	at := 0
	if up {
		at = -1
	}
	if !e.relocate(target.id, at) {
		return false
	}
	e.expanded.Expand(target.id)
	return true
}

// outdent moves the dragged block out of its parent when it sits at the
// boundary of its list in the drag direction.
func (e *Engine) outdent(up bool) bool {
	parent, idx, ok := blocktree.Locate(e.local, e.draggingID)
	if !ok || parent == "" {
		return false
	}
	sibs := blocktree.Siblings(e.local, parent)
	atBoundary := (up && idx == 0) || (!up && idx == len(sibs)-1)
	if !atBoundary {
		return false
	}
	grand, pidx, ok := blocktree.Locate(e.local, parent)
	if !ok {
		return false
	}
	at := pidx + 1
	if up {
		at = pidx
	}
	return e.relocate(grand, at)
}

// swapSibling swaps with the nearest sibling in the drag direction that
// accepts sibling drops.
func (e *Engine) swapSibling(up bool) bool {
	parent, idx, ok := blocktree.Locate(e.local, e.draggingID)
	if !ok {
		return false
	}
	sibs := blocktree.Siblings(e.local, parent)
	step := 1
	if up {
		step = -1
	}
	for j := idx + step; j >= 0 && j < len(sibs); j += step {
		if !e.dropSibling(sibs[j].ClientID) {
			continue
		}
		return e.relocate(parent, j)
	}
	return false
}

// relocate removes the dragged block and re-inserts it under parent at
// index (negative appends). index is interpreted after removal.
func (e *Engine) relocate(parent string, index int) bool {
	tree, b, ok := blocktree.Remove(e.local, e.draggingID)
	if !ok {
		return false
	}
	tree, ok = blocktree.Insert(tree, parent, index, b)
	if !ok {
		return false
	}
	e.local = tree
	return true
}

func (e *Engine) updateTarget() {
	parent, idx, ok := blocktree.Locate(e.local, e.draggingID)
	if !ok || (parent == e.originalParent && idx == e.originalIndex) {
		e.target = nil
		return
	}
	e.target = &DragTarget{
		ClientID:       e.draggingID,
		OriginalParent: e.originalParent,
		TargetID:       parent,
		TargetIndex:    idx,
	}
	e.log.WithFields(logrus.Fields{"client_id": e.draggingID, "target_id": parent, "target_index": idx}).Debug("drag target")
}

func indexOfRow(rows []flatRow, id string) int {
	for i, r := range rows {
		if r.id == id {
			return i
		}
	}
	return -1
}

// PendingMove is a committed drop waiting to be sent to the store.
type PendingMove struct {
	mover  Mover
	Target DragTarget
}

// Commit issues the single store move for this drop. Feed its result to
// Engine.ResolveDrop.
func (p *PendingMove) Commit(ctx context.Context) error {
	t := p.Target
	return p.mover.MoveBlocksToPosition(ctx, []string{t.ClientID}, t.OriginalParent, t.TargetID, t.TargetIndex)
}

// DropItem ends the local phase. Without a pending target it returns to
// GLOBAL immediately and returns nil; otherwise it enters RESOLVING_DROP and
// returns the move to commit.
func (e *Engine) DropItem() *PendingMove {
	if e.state != StateLocal {
		return nil
	}
	id := e.draggingID
	e.draggingID = ""
	if e.target == nil || e.mover == nil {
		e.toGlobal("no drop target")
		return nil
	}
	t := *e.target
	e.state = StateResolvingDrop
	e.sourceChanged = false
	e.log.WithFields(logrus.Fields{"client_id": id, "target_id": t.TargetID, "target_index": t.TargetIndex}).Debug("drop")
	return &PendingMove{mover: e.mover, Target: t}
}

// DragEnd re-expands the dragged block and drops it.
func (e *Engine) DragEnd(id string) *PendingMove {
	e.expanded.Expand(id)
	return e.DropItem()
}

// ResolveDrop reports the outcome of PendingMove.Commit. A rejection drops
// the private copy at once; success waits for the store's next tree unless
// one already arrived.
func (e *Engine) ResolveDrop(err error) {
	if e.state != StateResolvingDrop {
		return
	}
	e.target = nil
	if err != nil {
		e.log.WithError(err).Warn("move rejected; reverting to store tree")
		e.toGlobal("move rejected")
		return
	}
	e.committed = true
	if e.sourceChanged {
		e.toGlobal("store caught up")
	}
}

// Drop runs DropItem, Commit and ResolveDrop in one go for callers without
// an event loop. It reports whether a move was committed.
func (e *Engine) Drop(ctx context.Context) bool {
	p := e.DropItem()
	if p == nil {
		return false
	}
	err := p.Commit(ctx)
	e.ResolveDrop(err)
	return err == nil
}

func (e *Engine) toGlobal(reason string) {
	e.state = StateGlobal
	e.local = nil
	e.target = nil
	e.draggingID = ""
	e.committed = false
	e.sourceChanged = false
	e.log.WithField("reason", reason).Debug("drag state global")
}
