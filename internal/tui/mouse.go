package tui

import (
	"listview/internal/listview"

	tea "github.com/charmbracelet/bubbletea"
)

// mouseDrag tracks a left-button press until release. The engine drag only
// starts once the pointer moves, so a plain click just focuses the row.
type mouseDrag struct {
	id      string
	originX int
	originY int
	lastY   int
	started bool
}

const wheelRows = 3

// rowAt maps a screen line to a row index. The list starts below the header.
func (m appModel) rowAt(y int) int {
	start, end := m.window.Visible()
	i := start + y - 1
	if y < 1 || i >= end || i >= len(m.rows) {
		return -1
	}
	return i
}

// columnWidth is the horizontal pixel travel of one terminal cell.
func (m appModel) columnWidth() float64 {
	return float64(max(m.view.Config().RowHeight/4, 1))
}

func (m *appModel) updateMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		delta := wheelRows * m.window.RowHeight
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		m.window.Update(m.window.ScrollTop()+delta, len(m.view.Rows(nil)))
		m.layout(false)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.grabbed != "" {
			return nil
		}
		i := m.rowAt(msg.Y)
		if i < 0 {
			return nil
		}
		id := m.rows[i].ClientID
		m.focusRow(id, msg.Shift)
		m.mouse = &mouseDrag{id: id, originX: msg.X, originY: msg.Y, lastY: msg.Y}
		m.layout(false)

	case tea.MouseActionMotion:
		d := m.mouse
		if d == nil || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		e := m.view.Engine()
		if !d.started {
			if msg.Y == d.originY || !e.DragStart(d.id) {
				return nil
			}
			d.started = true
			m.setStatus("moving " + m.labelOf(d.id))
		}
		dy := msg.Y - d.originY
		velocity := float64(msg.Y - d.lastY)
		if velocity == 0 {
			velocity = float64(dy)
		}
		moved := e.MoveItem(listview.MoveInput{
			ClientID:   d.id,
			Translate:  float64(dy * m.view.Config().RowHeight),
			TranslateX: float64(msg.X-d.originX) * m.columnWidth(),
			Velocity:   velocity,
		})
		d.lastY = msg.Y
		if moved {
			d.originX = msg.X
			d.originY = msg.Y
		}
		m.layout(true)

	case tea.MouseActionRelease:
		d := m.mouse
		m.mouse = nil
		if d == nil || !d.started {
			return nil
		}
		cmd := m.commit(m.view.Engine().DragEnd(d.id))
		m.layout(true)
		return cmd
	}
	return nil
}
