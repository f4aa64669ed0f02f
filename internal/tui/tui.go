// Package tui is the interactive terminal list view over one document.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the list view full screen until the user quits. The document is
// reloaded whenever the store files change on disk.
func Run(ctx context.Context, opts Options) error {
	if opts.Editor == nil {
		return errors.New("tui: no document open")
	}
	applyThemePreference()
	applyColorProfilePreference(resolveGlyphs(opts.View.Glyphs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, opts, nil)
	changes, err := opts.Editor.Store().Watch(ctx, m.log)
	if err != nil {
		m.log.WithError(err).Warn("store watch unavailable; press r to reload")
	} else {
		m.changes = changes
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	return err
}
