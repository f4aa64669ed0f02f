package cli

import (
	"github.com/spf13/cobra"
)

func newMoveCmd(app *App) *cobra.Command {
	var from, to string
	var index int

	cmd := &cobra.Command{
		Use:   "move <client-id>...",
		Short: "Move sibling blocks under a parent at an index",
		Long: `Move one or more blocks that share the parent --from under --to at --index.
An empty parent is the document's top level. Within one parent the index is the
final position; a negative or out-of-range index appends.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.MoveBlocksToPosition(cmd.Context(), args, from, to, index); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"clientIds": args,
					"from":      from,
					"to":        to,
					"index":     index,
					"revision":  ed.Revision(),
				},
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Current parent of the blocks (empty = top level)")
	cmd.Flags().StringVar(&to, "to", "", "New parent (empty = top level)")
	cmd.Flags().IntVar(&index, "index", -1, "Position under the new parent (-1 = append)")
	return cmd
}
