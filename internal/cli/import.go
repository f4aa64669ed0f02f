package cli

import (
	"io"
	"os"

	"listview/internal/blocktree"
	"listview/internal/model"
	"listview/internal/store"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var asFormat string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the document's blocks from a JSON or YAML file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var data []byte
			var err error
			if name == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
				name = "stdin." + asFormat
			} else {
				data, err = os.ReadFile(name)
				if asFormat != "" {
					name += "." + asFormat
				}
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			blocks, err := store.DecodeDocument(name, data)
			if err != nil {
				return writeErr(cmd, err)
			}

			ed, _, err := openEditor(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.Import(cmd.Context(), blocks); err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"document": ed.Document(),
					"blocks":   countAll(ed.Blocks()),
					"revision": ed.Revision(),
				},
			})
		},
	}
	cmd.Flags().StringVar(&asFormat, "as", "", "Input format when the file name does not tell (json|yaml)")
	return cmd
}

func countAll(blocks []model.Block) int {
	n := 0
	blocktree.Walk(blocks, func(model.Block, string, int) bool {
		n++
		return true
	})
	return n
}
