package tui

import (
	"errors"

	"listview/internal/listview"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	errNestTarget    = errors.New("the row above does not take children")
	errOutdentMiddle = errors.New("only the first or last child can be outdented")
)

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.grabbed != "" {
			m.view.Engine().DragEnd(m.grabbed)
			m.grabbed = ""
		}
		m.persist()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout(true)
		return m, nil
	}
	if m.grabbed != "" {
		cmd := m.updateGrabbed(msg)
		m.layout(true)
		return m, cmd
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1, false)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1, false)
	case key.Matches(msg, m.keys.ExtendUp):
		m.moveFocus(-1, true)
	case key.Matches(msg, m.keys.ExtendDown):
		m.moveFocus(1, true)
	case key.Matches(msg, m.keys.Top):
		if len(m.rows) > 0 {
			m.focusRow(m.rows[0].ClientID, false)
		}
	case key.Matches(msg, m.keys.Bottom):
		if len(m.rows) > 0 {
			m.focusRow(m.rows[len(m.rows)-1].ClientID, false)
		}
	case key.Matches(msg, m.keys.Collapse):
		m.collapseOrParent()
	case key.Matches(msg, m.keys.Expand):
		m.expandOrChild()
	case key.Matches(msg, m.keys.Toggle):
		if r, _, ok := m.focusedRow(); ok && r.HasChildren {
			m.view.Expanded().Toggle(r.ClientID, m.view.Config().ExpandByDefault)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.view.Expanded().SetAll(m.view.SourceTree(), true)
	case key.Matches(msg, m.keys.CollapseAll):
		m.view.Expanded().SetAll(m.view.SourceTree(), false)
	case key.Matches(msg, m.keys.Grab):
		m.grab()
	case key.Matches(msg, m.keys.Indent):
		cmd = m.oneShot(m.indent)
	case key.Matches(msg, m.keys.Outdent):
		cmd = m.oneShot(m.outdent)
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	}
	m.layout(true)
	return m, cmd
}

func (m *appModel) updateGrabbed(msg tea.KeyMsg) tea.Cmd {
	id := m.grabbed
	switch {
	case key.Matches(msg, m.keys.Up):
		m.nudge(id, true, 0)
	case key.Matches(msg, m.keys.Down):
		m.nudge(id, false, 0)
	case key.Matches(msg, m.keys.Indent):
		if err := m.indent(id); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, m.keys.Outdent):
		if err := m.outdent(id); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Cancel):
		m.grabbed = ""
		return m.commit(m.view.Engine().DragEnd(id))
	}
	return nil
}

func (m *appModel) moveFocus(delta int, extend bool) {
	i := indexOfRow(m.rows, m.focus)
	if i < 0 || len(m.rows) == 0 {
		return
	}
	j := min(max(i+delta, 0), len(m.rows)-1)
	m.focusRow(m.rows[j].ClientID, extend)
}

// focusRow moves focus and mirrors it into the store selection.
func (m *appModel) focusRow(id string, extend bool) {
	m.focus = id
	sel := m.view.Selector()
	if extend {
		if _, err := sel.Extend(m.ctx, id); err != nil {
			m.setError(err)
		}
		return
	}
	if err := sel.Select(m.ctx, id); err != nil {
		m.setError(err)
	}
}

func (m *appModel) collapseOrParent() {
	r, _, ok := m.focusedRow()
	if !ok {
		return
	}
	if r.HasChildren && r.IsExpanded {
		m.view.Collapse(r.ClientID)
		return
	}
	if indexOfRow(m.rows, r.ParentID) >= 0 {
		m.focusRow(r.ParentID, false)
	}
}

func (m *appModel) expandOrChild() {
	r, i, ok := m.focusedRow()
	if !ok || !r.HasChildren {
		return
	}
	if !r.IsExpanded {
		m.view.Expand(r.ClientID)
		return
	}
	if i+1 < len(m.rows) {
		m.focusRow(m.rows[i+1].ClientID, false)
	}
}

func (m *appModel) grab() {
	if m.focus == "" {
		return
	}
	if !m.view.Engine().DragStart(m.focus) {
		return
	}
	m.grabbed = m.focus
	m.setStatus("moving " + m.labelOf(m.focus))
}

// oneShot runs a single drag gesture on the focused row and drops it.
func (m *appModel) oneShot(gesture func(id string) error) tea.Cmd {
	id := m.focus
	e := m.view.Engine()
	if id == "" || !e.DragStart(id) {
		return nil
	}
	if err := gesture(id); err != nil {
		m.setError(err)
	}
	return m.commit(e.DragEnd(id))
}

// nudge drags id one row up or down. dx is the horizontal travel in pixels.
func (m *appModel) nudge(id string, up bool, dx float64) bool {
	rh := float64(m.view.Config().RowHeight)
	in := listview.MoveInput{ClientID: id, Translate: rh, TranslateX: dx, Velocity: 1}
	if up {
		in.Translate = -rh
		in.Velocity = -1
	}
	return m.view.Engine().MoveItem(in)
}

// indent nests id into the row above it.
func (m *appModel) indent(id string) error {
	rows := m.view.Rows(nil)
	i := indexOfRow(rows, id)
	if i <= 0 {
		return errNestTarget
	}
	above := rows[i-1]
	if above.ClientID == rows[i].ParentID || !above.Block.AcceptsChildren() {
		return errNestTarget
	}
	m.nudge(id, true, float64(m.view.Config().NestThreshold+1))
	return nil
}

// outdent lifts id out of its parent, before it from the first position and
// after it from the last.
func (m *appModel) outdent(id string) error {
	rows := m.view.Rows(nil)
	i := indexOfRow(rows, id)
	if i < 0 || rows[i].Level <= 1 {
		return nil
	}
	r := rows[i]
	var up bool
	switch {
	case r.PositionInSet == r.SetSize:
		up = false
	case r.PositionInSet == 1:
		up = true
	default:
		return errOutdentMiddle
	}
	m.nudge(id, up, -float64(m.view.Config().NestThreshold+1))
	return nil
}

// commit sends a pending drop to the store off the UI goroutine.
func (m *appModel) commit(p *listview.PendingMove) tea.Cmd {
	if p == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return moveResultMsg{target: p.Target, err: p.Commit(ctx)}
	}
}
