package cli

import (
	"listview/internal/store"

	"github.com/spf13/cobra"
)

func newDocumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List documents in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docs, err := s.Documents(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": docs,
				"meta": map[string]any{"current": resolveDocument(app, cfg)},
			})
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <document>",
		Short: "Set the document opened when --document is not given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentDocument = store.NormalizeDocument(args[0])
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentDocument": cfg.CurrentDocument}})
		},
	}

	cmd.AddCommand(useCmd)
	return cmd
}
