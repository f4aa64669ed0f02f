package tui

import (
	"context"
	"io"

	"listview/internal/blocktree"
	"listview/internal/listview"
	"listview/internal/store"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Options configures one interactive session over an open document.
type Options struct {
	Editor *store.Editor
	// View is taken as-is; pass ViewConfig.Resolved().
	View         store.ViewConfig
	State        *store.ViewState
	RootClientID string
	Depth        int
	Log          logrus.FieldLogger
}

// storeChangedMsg is sent when the database files change on disk.
type storeChangedMsg struct{}

type moveResultMsg struct {
	target listview.DragTarget
	err    error
}

// header line above the list, status line below it.
const chromeLines = 2

type appModel struct {
	ctx     context.Context
	editor  *store.Editor
	view    *listview.View
	window  *listview.FixedWindow
	state   *store.ViewState
	log     logrus.FieldLogger
	changes <-chan struct{}

	glyphs glyphSet
	keys   keyMap
	help   help.Model

	width  int
	height int

	rows      []listview.Row
	focus     string
	grabbed   string
	mouse     *mouseDrag
	status    string
	statusErr bool
}

func newAppModel(ctx context.Context, opts Options, changes <-chan struct{}) appModel {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	doc := opts.Editor.Document()
	expanded := listview.ExpandedState(opts.State.DocumentExpanded(doc))
	focus := ""
	if opts.State != nil {
		focus = opts.State.Focused[doc]
	}

	v := listview.NewView(listview.Context{
		Store:    opts.Editor,
		Expanded: expanded,
		Config: listview.Config{
			ExpandByDefault: opts.View.ExpandsByDefault(),
			RowHeight:       opts.View.RowHeight,
			NestThreshold:   opts.View.NestThreshold,
			Overscan:        opts.View.WindowOverscan,
			RootClientID:    opts.RootClientID,
			Depth:           opts.Depth,
		},
		Log: log,
	})
	cfg := v.Config()

	m := appModel{
		ctx:     ctx,
		editor:  opts.Editor,
		view:    v,
		window:  listview.NewFixedWindow(cfg.RowHeight, 0, cfg.Overscan),
		state:   opts.State,
		log:     log.WithField("component", "tui"),
		changes: changes,
		glyphs:  resolveGlyphs(opts.View.Glyphs),
		keys:    defaultKeyMap(),
		help:    help.New(),
		focus:   focus,
	}
	m.layout(true)
	return m
}

func (m appModel) Init() tea.Cmd { return waitForChange(m.changes) }

// waitForChange delivers the next store change signal. It is re-armed after
// every delivery.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout(true)
		return m, nil

	case storeChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case moveResultMsg:
		m.view.ResolveDrop(msg.err)
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("client_id", msg.target.ClientID).Warn("move rejected")
			m.setError(msg.err)
		} else {
			m.setStatus("moved " + m.labelOf(msg.target.ClientID))
		}
		m.view.Refresh()
		m.layout(true)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		cmd := m.updateMouse(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) reload() {
	if _, err := m.editor.Reload(m.ctx); err != nil {
		m.log.WithError(err).Warn("reload")
		m.setError(err)
	}
	m.view.Refresh()
	m.layout(false)
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m appModel) listHeight() int {
	h := m.height
	if h <= 0 {
		h = 24
	}
	h -= chromeLines + m.helpHeight()
	return max(h, 1)
}

func (m appModel) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	n := 1
	for _, col := range m.keys.FullHelp() {
		n = max(n, len(col))
	}
	return n
}

// layout recomputes the rows. With follow set the window scrolls to keep the
// focused row visible.
func (m *appModel) layout(follow bool) {
	all := m.view.Rows(nil)
	m.fixFocus(all)

	rh := m.window.RowHeight
	m.window.ViewportHeight = m.listHeight() * rh
	m.window.Update(m.window.ScrollTop(), len(all))
	if follow {
		if i := indexOfRow(all, m.focus); i >= 0 {
			m.window.ScrollIntoView(i)
		}
	}
	m.rows = m.view.Rows(m.window.ItemInView)
}

// fixFocus moves focus off rows that vanished, to the nearest visible
// ancestor or else the first row.
func (m *appModel) fixFocus(rows []listview.Row) {
	if len(rows) == 0 {
		m.focus = ""
		return
	}
	if indexOfRow(rows, m.focus) >= 0 {
		return
	}
	if m.focus != "" {
		if path, ok := blocktree.Ancestors(m.view.Engine().Tree(), m.focus); ok {
			for i := len(path) - 1; i >= 0; i-- {
				if indexOfRow(rows, path[i]) >= 0 {
					m.focus = path[i]
					return
				}
			}
		}
	}
	m.focus = rows[0].ClientID
}

func indexOfRow(rows []listview.Row, id string) int {
	if id == "" {
		return -1
	}
	for i := range rows {
		if rows[i].ClientID == id {
			return i
		}
	}
	return -1
}

func (m appModel) focusedRow() (listview.Row, int, bool) {
	i := indexOfRow(m.rows, m.focus)
	if i < 0 {
		return listview.Row{}, -1, false
	}
	return m.rows[i], i, true
}

func (m appModel) labelOf(id string) string {
	if i := indexOfRow(m.rows, id); i >= 0 {
		return m.rows[i].Label
	}
	return id
}

// persist saves expand state and focus for the next session.
func (m appModel) persist() {
	if m.state == nil {
		return
	}
	doc := m.editor.Document()
	m.state.SetDocumentExpanded(doc, m.view.Expanded().Snapshot())
	m.state.SetFocused(doc, m.focus)
	if err := m.editor.Store().SaveViewState(m.state); err != nil {
		m.log.WithError(err).Warn("save view state")
	}
}
