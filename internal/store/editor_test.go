package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"listview/internal/blocktree"
	"listview/internal/model"

	"github.com/stretchr/testify/require"
)

// fixture:
//
//	a
//	g
//	  g1
//	  g2
//	b
//	locked (lock.move)
func fixture() []model.Block {
	return []model.Block{
		{ClientID: "a", Name: "core/paragraph", Attributes: map[string]any{"content": "Alpha"}},
		{ClientID: "g", Name: "core/group", InnerBlocks: []model.Block{
			{ClientID: "g1"},
			{ClientID: "g2"},
		}},
		{ClientID: "b"},
		{ClientID: "locked", Attributes: map[string]any{"lock": map[string]any{"move": true}}},
	}
}

func openFixture(t *testing.T) *Editor {
	t.Helper()
	ctx := context.Background()
	e, err := OpenEditor(ctx, Store{Dir: t.TempDir()}, "", nil)
	require.NoError(t, err)
	require.NoError(t, e.Import(ctx, fixture()))
	return e
}

func topIDs(blocks []model.Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.ClientID)
	}
	return out
}

func childIDs(t *testing.T, e *Editor, parent string) []string {
	t.Helper()
	return topIDs(blocktree.Siblings(e.Blocks(), parent))
}

func TestEditor_ImportRoundTrip(t *testing.T) {
	e := openFixture(t)
	require.Equal(t, DefaultDocument, e.Document())
	require.Equal(t, uint64(1), e.Revision())
	require.Equal(t, []string{"a", "g", "b", "locked"}, topIDs(e.Blocks()))
	require.Equal(t, []string{"g1", "g2"}, childIDs(t, e, "g"))

	a := e.Blocks()[0]
	require.Equal(t, "core/paragraph", a.Name)
	require.Equal(t, "Alpha", a.Label())
	require.True(t, e.Blocks()[3].Locked())

	other, err := OpenEditor(context.Background(), e.Store(), DefaultDocument, nil)
	require.NoError(t, err)
	require.Equal(t, e.Blocks(), other.Blocks())
	require.Equal(t, e.Revision(), other.Revision())
}

func TestEditor_MoveWithinParentUsesFinalIndex(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()

	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"a"}, "", "", 2))
	require.Equal(t, []string{"g", "b", "a", "locked"}, topIDs(e.Blocks()))
	require.Equal(t, uint64(2), e.Revision())

	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"g2"}, "g", "g", 0))
	require.Equal(t, []string{"g2", "g1"}, childIDs(t, e, "g"))
}

func TestEditor_MoveAcrossParents(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()

	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"b"}, "", "g", 0))
	require.Equal(t, []string{"b", "g1", "g2"}, childIDs(t, e, "g"))
	require.Equal(t, []string{"a", "g", "locked"}, topIDs(e.Blocks()))

	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"a"}, "", "g", -1))
	require.Equal(t, []string{"b", "g1", "g2", "a"}, childIDs(t, e, "g"))

	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"g1", "g2"}, "g", "", 0))
	require.Equal(t, []string{"g1", "g2", "g", "locked"}, topIDs(e.Blocks()))
	require.Equal(t, []string{"b", "a"}, childIDs(t, e, "g"))
}

func TestEditor_NoOpMoveKeepsRevision(t *testing.T) {
	e := openFixture(t)
	require.NoError(t, e.MoveBlocksToPosition(context.Background(), []string{"g"}, "", "", 1))
	require.Equal(t, uint64(1), e.Revision())
}

func TestEditor_MoveRejections(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()

	var nf NotFoundError
	err := e.MoveBlocksToPosition(ctx, []string{"nope"}, "", "", 0)
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "nope", nf.ID)

	err = e.MoveBlocksToPosition(ctx, []string{"a"}, "", "missing", 0)
	require.True(t, errors.As(err, &nf))

	var inv InvalidMoveError
	err = e.MoveBlocksToPosition(ctx, []string{"g1"}, "", "", 0)
	require.True(t, errors.As(err, &inv), "wrong source parent")

	err = e.MoveBlocksToPosition(ctx, []string{"g"}, "", "g1", 0)
	require.True(t, errors.As(err, &inv), "into own descendant")

	err = e.MoveBlocksToPosition(ctx, []string{"a", "a"}, "", "g", 0)
	require.True(t, errors.As(err, &inv), "duplicate ids")

	var locked LockedError
	err = e.MoveBlocksToPosition(ctx, []string{"locked"}, "", "", 0)
	require.True(t, errors.As(err, &locked))
	require.Equal(t, "locked", locked.ClientID)

	err = e.MoveBlocksToPosition(ctx, []string{"a"}, "", "locked", 0)
	require.True(t, errors.As(err, &locked))

	require.Equal(t, uint64(1), e.Revision())
	require.Equal(t, []string{"a", "g", "b", "locked"}, topIDs(e.Blocks()))
}

func TestEditor_ReloadSeesOtherWriters(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()
	other, err := OpenEditor(ctx, e.Store(), e.Document(), nil)
	require.NoError(t, err)

	changed, err := other.Reload(ctx)
	require.NoError(t, err)
	require.False(t, changed)

	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"b"}, "", "", 0))
	require.NoError(t, e.SelectBlock(ctx, "g1"))

	changed, err = other.Reload(ctx)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, []string{"b", "a", "g", "locked"}, topIDs(other.Blocks()))
	require.Equal(t, model.Selection{Start: "g1", End: "g1"}, other.Selection())
}

func TestEditor_Selection(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()

	require.NoError(t, e.SelectBlock(ctx, "g1"))
	require.Equal(t, []string{"g1"}, e.SelectedIDs())
	require.Equal(t, []string{"g"}, e.BlockParents("g1"))
	require.Equal(t, []string{}, e.BlockParents("a"))

	require.NoError(t, e.MultiSelect(ctx, "a", "b"))
	require.Equal(t, []string{"a", "g", "b"}, e.SelectedIDs())

	require.NoError(t, e.MultiSelect(ctx, "b", "a"))
	require.Equal(t, []string{"a", "g", "b"}, e.SelectedIDs())

	// Different parents lift to the children of the common ancestor.
	require.NoError(t, e.MultiSelect(ctx, "g2", "b"))
	require.Equal(t, model.Selection{Start: "g", End: "b"}, e.Selection())
	require.Equal(t, []string{"g", "b"}, e.SelectedIDs())

	require.NoError(t, e.MultiSelect(ctx, "g", "g1"))
	require.Equal(t, []string{"g"}, e.SelectedIDs())

	var nf NotFoundError
	require.True(t, errors.As(e.SelectBlock(ctx, "nope"), &nf))
	require.True(t, errors.As(e.MultiSelect(ctx, "a", "nope"), &nf))

	require.NoError(t, e.SelectBlock(ctx, ""))
	require.Nil(t, e.SelectedIDs())
}

func TestEditor_WritesEvents(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()
	require.NoError(t, e.MoveBlocksToPosition(ctx, []string{"a"}, "", "g", 0))
	require.NoError(t, e.SelectBlock(ctx, "a"))

	all, err := e.Store().ReadEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "document.import", all[0].Type)

	last, err := e.Store().ReadEvents(2)
	require.NoError(t, err)
	require.Equal(t, []string{"block.move", "selection.set"}, []string{last[0].Type, last[1].Type})
	require.Equal(t, "a", last[0].EntityID)
	require.Equal(t, DefaultDocument, last[0].Document)
	require.NotEmpty(t, last[0].ID)
}

func TestStore_ReadEventsMissingFile(t *testing.T) {
	evs, err := Store{Dir: t.TempDir()}.ReadEvents(10)
	require.NoError(t, err)
	require.Empty(t, evs)
}

func TestStore_WatchSignalsWrites(t *testing.T) {
	e := openFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := e.Store().Watch(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, e.MoveBlocksToPosition(context.Background(), []string{"b"}, "", "", 0))

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal")
	}
}

func TestStore_Documents(t *testing.T) {
	e := openFixture(t)
	ctx := context.Background()
	other, err := OpenEditor(ctx, e.Store(), "notes", nil)
	require.NoError(t, err)
	require.NoError(t, other.Import(ctx, []model.Block{{ClientID: "n"}}))

	docs, err := e.Store().Documents(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{DefaultDocument, "notes"}, docs)
}
