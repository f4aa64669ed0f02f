package cli

import (
	"listview/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the store directory and database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Init(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := resolveDocument(app, cfg)
			app.logger().WithField("dir", s.Dir).Info("store initialized")

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":      s.Dir,
					"document": doc,
				},
			})
		},
	}
	return cmd
}
