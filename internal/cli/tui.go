package cli

import (
	"fmt"
	"os"

	"listview/internal/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runTUI opens the interactive view. Logs go to a file in the store dir so
// they never draw over the alt screen.
func runTUI(cmd *cobra.Command, app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := s.Ensure(); err != nil {
		return writeErr(cmd, err)
	}
	f, err := os.OpenFile(s.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open log: %w", err))
	}
	defer f.Close()

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if app.log != nil {
		log.SetLevel(app.log.GetLevel())
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	app.log = log

	ed, cfg, err := openEditor(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	st, err := s.LoadViewState()
	if err != nil {
		return writeErr(cmd, err)
	}

	log.WithFields(logrus.Fields{"dir": s.Dir, "document": ed.Document()}).Info("tui start")
	return tui.Run(cmd.Context(), tui.Options{
		Editor: ed,
		View:   cfg.View.Resolved(),
		State:  st,
		Log:    log,
	})
}
