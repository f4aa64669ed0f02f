package cli

import (
	"listview/internal/blocktree"

	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var root string
	var depth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the document's client-id tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			blocks := blocktree.NewBuilder(ed).Build(blocktree.BuildOptions{RootClientID: root, Depth: depth})
			return writeOut(cmd, app, map[string]any{
				"data": blocks,
				"meta": map[string]any{
					"document": ed.Document(),
					"revision": ed.Revision(),
				},
			})
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Only the inner blocks of this block")
	cmd.Flags().IntVar(&depth, "depth", 0, "Truncate below this many levels (0 = all)")
	return cmd
}
