package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Rows must stay readable on light and dark backgrounds, so colors are
// adaptive and faint styling only applies on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted        lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg     lipgloss.TerminalColor = ac("240", "245")
	colorFocusBg      lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorFocusFg      lipgloss.TerminalColor = ac("235", "255")
	colorSelectedBg   lipgloss.TerminalColor = ac("153", "24")
	colorSelectedFg   lipgloss.TerminalColor = ac("235", "255")
	colorBranchFg     lipgloss.TerminalColor = ac("25", "111")
	colorAccent       lipgloss.TerminalColor = ac("27", "62")
	colorErrorFg      lipgloss.TerminalColor = ac("160", "203")
	colorPlaceholder  lipgloss.TerminalColor = ac("250", "238")
	colorDisplacement lipgloss.TerminalColor = ac("130", "214")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorChromeFg).Bold(true)
}

func styleFocused() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorFocusBg).Foreground(colorFocusFg)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

func styleBranchSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorBranchFg)
}

func styleDragged() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func stylePlaceholder() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPlaceholder)
}

func styleDisplacement() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDisplacement)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

// applyColorProfilePreference sets the color profile for the interactive
// view. termenv.EnvColorProfile would honor CLICOLOR and can disable colors
// in a TUI, so only NO_COLOR and the ascii glyph set force plain output.
func applyColorProfilePreference(g glyphSet) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || g == glyphSetASCII {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference overrides background detection:
// LISTVIEW_TUI_THEME=light|dark first, then the COLORFGBG heuristic.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LISTVIEW_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	// COLORFGBG is "fg;bg", sometimes with more segments; bg is last.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
