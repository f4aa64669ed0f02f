package tui

import (
	"fmt"
	"strings"

	"listview/internal/listview"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteByte('\n')

	start, end := m.window.Visible()
	end = min(end, len(m.rows))
	lines := 0
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], width))
		b.WriteByte('\n')
		lines++
	}
	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render("(empty document)"))
		b.WriteByte('\n')
		lines++
	}
	for ; lines < m.listHeight(); lines++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.renderStatus(width))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m appModel) renderHeader(width int) string {
	e := m.view.Engine()
	parts := []string{m.editor.Document(), fmt.Sprintf("%d rows", m.view.RowCount())}
	if e.State() != listview.StateGlobal {
		parts = append(parts, strings.ToLower(e.State().String()))
	}
	if sel := m.editor.SelectedIDs(); len(sel) > 1 {
		parts = append(parts, fmt.Sprintf("%d selected", len(sel)))
	}
	sep := " " + m.glyphs.hrule() + " "
	return styleHeader().Render(xansi.Truncate(strings.Join(parts, sep), width, m.glyphs.ellipsis()))
}

func (m appModel) renderStatus(width int) string {
	if m.status == "" {
		return ""
	}
	s := xansi.Truncate(m.status, width, m.glyphs.ellipsis())
	if m.statusErr {
		return styleError().Render(s)
	}
	return styleMuted().Render(s)
}

func (m appModel) renderRow(r listview.Row, width int) string {
	indent := strings.Repeat("  ", max(r.Level-1, 0))
	if !r.Render {
		return stylePlaceholder().Render(indent + m.glyphs.ellipsis())
	}

	marker := m.glyphs.bullet()
	switch {
	case r.IsDragged:
		marker = m.glyphs.grip()
	case r.HasChildren && r.IsExpanded:
		marker = m.glyphs.twistyExpanded()
	case r.HasChildren:
		marker = m.glyphs.twistyCollapsed()
	}

	label := r.Label
	if r.Block.Locked() {
		label += " " + m.glyphs.lock()
	}
	if r.IsNesting.True() {
		label = m.glyphs.nest() + " " + label
	}
	line := indent + marker + " " + label
	line = xansi.Truncate(line, width-2, m.glyphs.ellipsis())

	shift := m.glyphs.shift(r.Displacement)
	if shift == "" {
		shift = " "
	}
	shift = styleDisplacement().Render(shift)

	var st lipgloss.Style
	switch {
	case r.IsDragged:
		st = styleDragged()
	case r.ClientID == m.focus:
		st = styleFocused()
	case r.IsSelected:
		st = styleSelected()
	case r.IsBranchSelected:
		st = styleBranchSelected()
	default:
		st = lipgloss.NewStyle()
	}
	if r.IsSelected && r.ClientID == m.focus {
		st = styleSelected().Bold(true)
	}
	pad := max(width-2-xansi.StringWidth(line), 0)
	return shift + " " + st.Render(line+strings.Repeat(" ", pad))
}
