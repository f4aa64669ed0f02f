package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"listview/internal/model"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// blockRow is one persisted block; the tree shape lives in ParentID + Rank.
type blockRow struct {
	ClientID   string
	ParentID   string
	Rank       string
	Name       string
	Attributes map[string]any
}

func loadBlockRows(ctx context.Context, q querier, doc string) ([]blockRow, error) {
	rows, err := q.QueryContext(ctx, `SELECT client_id, parent_id, rank, name, attributes_json
		FROM blocks WHERE document_id = ? ORDER BY parent_id, rank, client_id`, doc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []blockRow
	for rows.Next() {
		var r blockRow
		var attrs string
		if err := rows.Scan(&r.ClientID, &r.ParentID, &r.Rank, &r.Name, &attrs); err != nil {
			return nil, err
		}
		if attrs != "" {
			if err := json.Unmarshal([]byte(attrs), &r.Attributes); err != nil {
				return nil, fmt.Errorf("block %s: attributes: %w", r.ClientID, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// assembleTree turns rows into the nested block tree. Rows whose parent is
// missing are unreachable and left out.
func assembleTree(rows []blockRow) []model.Block {
	byParent := map[string][]blockRow{}
	for _, r := range rows {
		byParent[r.ParentID] = append(byParent[r.ParentID], r)
	}
	for _, sibs := range byParent {
		sortRows(sibs)
	}
	var build func(parent string, seen map[string]bool) []model.Block
	build = func(parent string, seen map[string]bool) []model.Block {
		sibs := byParent[parent]
		out := make([]model.Block, 0, len(sibs))
		for _, r := range sibs {
			if seen[r.ClientID] {
				continue
			}
			seen[r.ClientID] = true
			b := model.Block{ClientID: r.ClientID, Name: r.Name, Attributes: r.Attributes}
			if inner := build(r.ClientID, seen); len(inner) > 0 {
				b.InnerBlocks = inner
			}
			out = append(out, b)
		}
		return out
	}
	return build("", map[string]bool{})
}

func sortRows(rows []blockRow) {
	sibs := make([]Sibling, len(rows))
	byID := make(map[string]blockRow, len(rows))
	for i, r := range rows {
		sibs[i] = Sibling{ID: r.ClientID, Rank: r.Rank}
		byID[r.ClientID] = r
	}
	SortSiblings(sibs)
	for i, s := range sibs {
		rows[i] = byID[s.ID]
	}
}

func readRevision(ctx context.Context, q querier, doc string) (uint64, error) {
	var rev int64
	err := q.QueryRowContext(ctx, `SELECT rev FROM revisions WHERE document_id = ?`, doc).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(rev), nil
}

func bumpRevision(ctx context.Context, q querier, doc string) (uint64, error) {
	if _, err := q.ExecContext(ctx, `INSERT INTO revisions(document_id, rev) VALUES(?, 1)
		ON CONFLICT(document_id) DO UPDATE SET rev = rev + 1`, doc); err != nil {
		return 0, err
	}
	return readRevision(ctx, q, doc)
}

func readSelection(ctx context.Context, q querier, doc string) (model.Selection, error) {
	var sel model.Selection
	err := q.QueryRowContext(ctx, `SELECT start_id, end_id FROM selection WHERE document_id = ?`, doc).Scan(&sel.Start, &sel.End)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Selection{}, nil
	}
	return sel, err
}

func writeSelection(ctx context.Context, q querier, doc string, sel model.Selection) error {
	if sel.Empty() {
		_, err := q.ExecContext(ctx, `DELETE FROM selection WHERE document_id = ?`, doc)
		return err
	}
	_, err := q.ExecContext(ctx, `INSERT INTO selection(document_id, start_id, end_id) VALUES(?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET start_id = excluded.start_id, end_id = excluded.end_id`,
		doc, sel.Start, sel.End)
	return err
}

// replaceBlocks swaps the whole document for blocks, assigning fresh ranks.
func replaceBlocks(ctx context.Context, q querier, doc string, blocks []model.Block) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM blocks WHERE document_id = ?`, doc); err != nil {
		return err
	}
	var insert func(parent string, list []model.Block) error
	insert = func(parent string, list []model.Block) error {
		ranks := SpreadRanks(len(list))
		for i, b := range list {
			attrs := ""
			if len(b.Attributes) > 0 {
				raw, err := json.Marshal(b.Attributes)
				if err != nil {
					return fmt.Errorf("block %s: attributes: %w", b.ClientID, err)
				}
				attrs = string(raw)
			}
			if _, err := q.ExecContext(ctx, `INSERT INTO blocks(document_id, client_id, parent_id, rank, name, attributes_json)
				VALUES(?, ?, ?, ?, ?, ?)`, doc, b.ClientID, parent, ranks[i], b.Name, attrs); err != nil {
				return fmt.Errorf("insert block %s: %w", b.ClientID, err)
			}
			if err := insert(b.ClientID, b.InnerBlocks); err != nil {
				return err
			}
		}
		return nil
	}
	return insert("", blocks)
}

func updatePlacement(ctx context.Context, q querier, doc, id, parent, rank string) error {
	_, err := q.ExecContext(ctx, `UPDATE blocks SET parent_id = ?, rank = ? WHERE document_id = ? AND client_id = ?`,
		parent, rank, doc, id)
	return err
}
