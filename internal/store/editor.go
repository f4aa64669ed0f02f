package store

import (
	"context"
	"fmt"
	"io"
	"sync"

	"listview/internal/blocktree"
	"listview/internal/model"

	"github.com/sirupsen/logrus"
)

// Editor is one open document. It caches the assembled tree and serves it to
// the list view; every write goes through SQLite and bumps the document
// revision. Safe for concurrent use.
type Editor struct {
	store Store
	doc   string
	log   logrus.FieldLogger

	mu     sync.RWMutex
	loaded bool
	blocks []model.Block
	rev    uint64
	sel    model.Selection
}

// OpenEditor opens doc in s and loads it. log may be nil.
func OpenEditor(ctx context.Context, s Store, doc string, log logrus.FieldLogger) (*Editor, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	e := &Editor{
		store:  s,
		doc:    NormalizeDocument(doc),
		log:    log.WithField("document", NormalizeDocument(doc)),
		blocks: []model.Block{},
	}
	if _, err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) Document() string { return e.doc }

func (e *Editor) Store() Store { return e.store }

// Blocks returns the current tree. The slice is never mutated after it is
// published; writes replace it.
func (e *Editor) Blocks() []model.Block {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.blocks
}

func (e *Editor) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rev
}

func (e *Editor) Selection() model.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// BlockParents returns the ancestors of id, outermost first.
func (e *Editor) BlockParents(id string) []string {
	p, _ := blocktree.Ancestors(e.Blocks(), id)
	return p
}

func (e *Editor) SelectedIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return SelectedIDs(e.blocks, e.sel)
}

// Reload re-reads the document when another writer changed it. It reports
// whether the tree or the selection changed.
func (e *Editor) Reload(ctx context.Context) (bool, error) {
	db, err := e.store.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	rev, err := readRevision(ctx, db, e.doc)
	if err != nil {
		return false, err
	}
	sel, err := readSelection(ctx, db, e.doc)
	if err != nil {
		return false, err
	}

	e.mu.RLock()
	treeStale := !e.loaded || rev != e.rev
	selChanged := sel != e.sel
	e.mu.RUnlock()

	var tree []model.Block
	if treeStale {
		rows, err := loadBlockRows(ctx, db, e.doc)
		if err != nil {
			return false, err
		}
		tree = assembleTree(rows)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if treeStale {
		e.blocks = tree
		e.rev = rev
		e.loaded = true
	}
	e.sel = sel
	if treeStale || selChanged {
		e.log.WithFields(logrus.Fields{"rev": rev, "tree": treeStale, "selection": selChanged}).Debug("reloaded")
	}
	return treeStale || selChanged, nil
}

// MoveBlocksToPosition moves ids, which must all be children of fromParent,
// under toParent at index. Within one parent index is the final position
// after removal; a negative or out-of-range index appends.
func (e *Editor) MoveBlocksToPosition(ctx context.Context, ids []string, fromParent, toParent string, index int) error {
	if len(ids) == 0 {
		return nil
	}
	db, err := e.store.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := loadBlockRows(ctx, tx, e.doc)
	if err != nil {
		return err
	}
	tree := assembleTree(rows)
	plan, err := planMove(tree, rows, ids, fromParent, toParent, index)
	if err != nil {
		e.log.WithError(err).WithField("client_ids", ids).Debug("move refused")
		return err
	}
	if len(plan.Ranks) == 0 {
		return nil
	}
	for id, rank := range plan.Ranks {
		if err := updatePlacement(ctx, tx, e.doc, id, toParent, rank); err != nil {
			return fmt.Errorf("move %s: %w", id, err)
		}
	}
	rev, err := bumpRevision(ctx, tx, e.doc)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for i := range rows {
		if rank, ok := plan.Ranks[rows[i].ClientID]; ok {
			rows[i].ParentID = toParent
			rows[i].Rank = rank
		}
	}
	e.publish(assembleTree(rows), rev)

	e.log.WithFields(logrus.Fields{
		"client_ids":   ids,
		"target_id":    toParent,
		"target_index": index,
		"rebalanced":   len(plan.Rebalanced),
	}).Debug("blocks moved")
	e.appendEvent("block.move", ids[0], map[string]any{
		"clientIds": ids,
		"from":      fromParent,
		"to":        toParent,
		"index":     index,
	})
	return nil
}

// SelectBlock selects a single block; an empty id clears the selection.
func (e *Editor) SelectBlock(ctx context.Context, id string) error {
	if id != "" {
		if _, ok := blocktree.Find(e.Blocks(), id); !ok {
			return NotFoundError{Kind: "block", ID: id}
		}
	}
	return e.setSelection(ctx, model.Selection{Start: id, End: id})
}

// MultiSelect selects the sibling range from start to end. Blocks at the
// same depth under different parents are lifted to the children of their
// lowest common ancestor.
func (e *Editor) MultiSelect(ctx context.Context, start, end string) error {
	sel, err := liftSelection(e.Blocks(), start, end)
	if err != nil {
		return err
	}
	return e.setSelection(ctx, sel)
}

func (e *Editor) setSelection(ctx context.Context, sel model.Selection) error {
	db, err := e.store.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := writeSelection(ctx, db, e.doc, sel); err != nil {
		return err
	}
	e.mu.Lock()
	e.sel = sel
	e.mu.Unlock()
	e.appendEvent("selection.set", sel.Start, sel)
	return nil
}

// Import replaces the document with blocks. Blocks without a client id get a
// generated one.
func (e *Editor) Import(ctx context.Context, blocks []model.Block) error {
	blocks, err := PrepareImport(blocks)
	if err != nil {
		return err
	}
	db, err := e.store.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceBlocks(ctx, tx, e.doc, blocks); err != nil {
		return err
	}
	if err := writeSelection(ctx, tx, e.doc, model.Selection{}); err != nil {
		return err
	}
	rev, err := bumpRevision(ctx, tx, e.doc)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	rows, err := loadBlockRows(ctx, db, e.doc)
	if err != nil {
		return err
	}
	e.publish(assembleTree(rows), rev)
	e.mu.Lock()
	e.sel = model.Selection{}
	e.mu.Unlock()

	n := 0
	blocktree.Walk(blocks, func(model.Block, string, int) bool {
		n++
		return true
	})
	e.log.WithField("blocks", n).Info("document imported")
	e.appendEvent("document.import", e.doc, map[string]any{"blocks": n})
	return nil
}

func (e *Editor) publish(tree []model.Block, rev uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blocks = tree
	e.rev = rev
	e.loaded = true
}

func (e *Editor) appendEvent(typ, entityID string, payload any) {
	if err := e.store.AppendEvent(e.doc, typ, entityID, payload); err != nil {
		e.log.WithError(err).Warn("append event")
	}
}
