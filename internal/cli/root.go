package cli

import (
	"fmt"
	"os"
	"strings"

	"listview/internal/format"
	"listview/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Dir      string
	Document string
	Pretty   bool
	Format   string
	LogLevel string

	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "listview",
		Short:        "Hierarchical list view over block documents",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive list view
  listview

  # Load a document and inspect its rows
  listview import page.yaml
  listview rows --collapse group-1

  # Move a block under another one
  listview move para-2 --to group-1 --index 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive view.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd, app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = log
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("LISTVIEW_DIR", ""), "Path to store dir (default: nearest .listview above the working directory)")
	cmd.PersistentFlags().StringVar(&app.Document, "document", envOr("LISTVIEW_DOCUMENT", ""), "Document id (default: currentDocument from config, else 'default')")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LISTVIEW_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("LISTVIEW_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newRowsCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newSelectCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDocumentsCmd(app))

	return cmd
}

func newLogger(cmd *cobra.Command, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(lvl)
	return log, nil
}

// resolveStore picks the store dir: --dir, else the nearest .listview above
// the working directory, else ./.listview.
func resolveStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

// resolveDocument applies --document / LISTVIEW_DOCUMENT, then the config's
// currentDocument, then the default.
func resolveDocument(app *App, cfg *store.GlobalConfig) string {
	if strings.TrimSpace(app.Document) != "" {
		return store.NormalizeDocument(app.Document)
	}
	if cfg != nil && cfg.CurrentDocument != "" {
		return store.NormalizeDocument(cfg.CurrentDocument)
	}
	return store.DefaultDocument
}

// openEditor resolves the store and document and loads it.
func openEditor(cmd *cobra.Command, app *App) (*store.Editor, *store.GlobalConfig, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := resolveStore(app)
	if err != nil {
		return nil, nil, err
	}
	doc := resolveDocument(app, cfg)
	ed, err := store.OpenEditor(cmd.Context(), s, doc, app.logger())
	if err != nil {
		return nil, nil, fmt.Errorf("open document %s: %w", doc, err)
	}
	return ed, cfg, nil
}

func (app *App) logger() logrus.FieldLogger {
	if app.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		return l
	}
	return app.log
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
