package tui

import (
	"os"
	"strings"

	"listview/internal/listview"
)

// Some terminal fonts render the Unicode affordances poorly, so every glyph
// has an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

// resolveGlyphs picks the glyph set from the view config, letting
// LISTVIEW_TUI_GLYPHS override it.
func resolveGlyphs(configured string) glyphSet {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("LISTVIEW_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "ascii":
		return glyphSetASCII
	default:
		return glyphSetUnicode
	}
}

func (g glyphSet) String() string {
	if g == glyphSetASCII {
		return "ascii"
	}
	return "unicode"
}

func (g glyphSet) twistyCollapsed() string {
	if g == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func (g glyphSet) twistyExpanded() string {
	if g == glyphSetASCII {
		return "v"
	}
	return "▾"
}

func (g glyphSet) bullet() string {
	if g == glyphSetASCII {
		return "*"
	}
	return "•"
}

func (g glyphSet) grip() string {
	if g == glyphSetASCII {
		return "="
	}
	return "⠿"
}

func (g glyphSet) lock() string {
	if g == glyphSetASCII {
		return "#"
	}
	return "⊘"
}

// shift marks a row pushed aside by an external drop indicator.
func (g glyphSet) shift(d listview.Displacement) string {
	switch d {
	case listview.DisplacementUp:
		if g == glyphSetASCII {
			return "^"
		}
		return "↑"
	case listview.DisplacementDown:
		if g == glyphSetASCII {
			return "v"
		}
		return "↓"
	}
	return ""
}

func (g glyphSet) nest() string {
	if g == glyphSetASCII {
		return "->"
	}
	return "↳"
}

func (g glyphSet) ellipsis() string {
	if g == glyphSetASCII {
		return "..."
	}
	return "…"
}

func (g glyphSet) hrule() string {
	if g == glyphSetASCII {
		return "-"
	}
	return "─"
}
