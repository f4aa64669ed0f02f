package cli

import (
	"listview/internal/listview"

	"github.com/spf13/cobra"
)

func newSelectCmd(app *App) *cobra.Command {
	var clearSel bool

	cmd := &cobra.Command{
		Use:   "select [<client-id> [<end-client-id>]]",
		Short: "Select a block, or the range between two blocks",
		Long: `With one id, select that block. With two, select the sibling range between
them; ids at different depths are first lifted to a common depth.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !clearSel && len(args) == 0 {
				return writeErr(cmd, errSelectArgs)
			}
			ed, _, err := openEditor(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			switch {
			case clearSel:
				err = ed.SelectBlock(ctx, "")
			case len(args) == 1:
				err = ed.SelectBlock(ctx, args[0])
			default:
				r := listview.GetCommonDepthClientIDs(args[0], args[1], ed.BlockParents(args[0]), ed.BlockParents(args[1]))
				if r.Start == r.End {
					err = ed.SelectBlock(ctx, r.Start)
				} else {
					err = ed.MultiSelect(ctx, r.Start, r.End)
				}
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			ids := ed.SelectedIDs()
			if ids == nil {
				ids = []string{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"selection":   ed.Selection(),
					"selectedIds": ids,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&clearSel, "clear", false, "Clear the selection")
	return cmd
}
