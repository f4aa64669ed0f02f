package cli

import (
	"fmt"
	"strconv"
	"strings"

	"listview/internal/listview"

	"github.com/spf13/cobra"
)

func newRowsCmd(app *App) *cobra.Command {
	var (
		root            string
		depth           int
		collapse        []string
		expand          []string
		expandByDefault bool
		saved           bool
		dragged         string
		dropTarget      string
		dropPosition    string
		windowStart     int
		windowSize      int
	)

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Lay out the visible rows with their drag and render props",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, cfg, err := openEditor(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			vc := cfg.View.Resolved()
			if !cmd.Flags().Changed("expand-by-default") {
				expandByDefault = vc.ExpandsByDefault()
			}

			expanded := listview.ExpandedState{}
			if saved {
				st, err := ed.Store().LoadViewState()
				if err != nil {
					return writeErr(cmd, err)
				}
				expanded = listview.ExpandedState(st.DocumentExpanded(ed.Document()))
			}
			for _, id := range collapse {
				expanded.Collapse(id)
			}
			for _, id := range expand {
				expanded.Expand(id)
			}

			target, err := parseDropTarget(dropTarget)
			if err != nil {
				return writeErr(cmd, err)
			}
			pos, err := listview.ParseDropPosition(dropPosition)
			if err != nil {
				return writeErr(cmd, err)
			}

			v := listview.NewView(listview.Context{
				Store:    ed,
				Expanded: expanded,
				Config: listview.Config{
					ExpandByDefault: expandByDefault,
					RowHeight:       vc.RowHeight,
					NestThreshold:   vc.NestThreshold,
					RootClientID:    root,
					Depth:           depth,
				},
				Log: app.logger(),
			})
			if dragged != "" && !v.Engine().DragStart(dragged) {
				return writeErr(cmd, fmt.Errorf("cannot drag %s: not in the tree", dragged))
			}
			v.SetDropIndicator(target, pos)

			var inView func(int) bool
			if windowSize > 0 {
				w := listview.NewFixedWindow(1, windowSize, 0)
				w.Update(windowStart, v.RowCount())
				inView = w.ItemInView
			}
			rows := v.Rows(inView)
			if rows == nil {
				rows = []listview.Row{}
			}

			return writeOut(cmd, app, map[string]any{
				"data": rows,
				"meta": map[string]any{
					"document":   ed.Document(),
					"revision":   ed.Revision(),
					"rowCount":   v.RowCount(),
					"state":      v.Engine().State().String(),
					"dropTarget": target.String(),
				},
			})
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Only the inner blocks of this block")
	cmd.Flags().IntVar(&depth, "depth", 0, "Truncate below this many levels (0 = all)")
	cmd.Flags().StringArrayVar(&collapse, "collapse", nil, "Collapse this block (repeatable)")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "Expand this block (repeatable)")
	cmd.Flags().BoolVar(&expandByDefault, "expand-by-default", true, "Blocks without an explicit choice are expanded (default from config)")
	cmd.Flags().BoolVar(&saved, "saved", false, "Start from the expand state saved by the interactive view")
	cmd.Flags().StringVar(&dragged, "dragged", "", "Lay out as if this block were being dragged")
	cmd.Flags().StringVar(&dropTarget, "drop-target", "", "Drop target row index, or 'null' for outside any drop zone")
	cmd.Flags().StringVar(&dropPosition, "drop-position", string(listview.DropTop), "Drop position (top|bottom|inside)")
	cmd.Flags().IntVar(&windowStart, "window-start", 0, "First visible row")
	cmd.Flags().IntVar(&windowSize, "window-size", 0, "Visible row count; rows outside render as placeholders (0 = all)")
	return cmd
}

func parseDropTarget(s string) (listview.Index, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return listview.Undefined(), nil
	case "null", "none":
		return listview.Null(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return listview.Index{}, fmt.Errorf("invalid --drop-target %q (want a row index or null)", s)
	}
	return listview.At(n), nil
}
