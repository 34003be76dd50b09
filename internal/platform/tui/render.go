package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forge-studio/internal/core"
)

// ansiCodes maps core.Color to terminal color codes.
var ansiCodes = map[core.Color]string{
	core.ColorBlack:         "0",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "94",
	core.ColorNavy:          "17",
	core.ColorSky:           "117",
	core.ColorForest:        "22",
}

type stylePair struct {
	fg, bg core.Color
}

// cellStyle returns the lipgloss style for a foreground/background pair.
func cellStyle(cache map[stylePair]lipgloss.Style, fg, bg core.Color) lipgloss.Style {
	key := stylePair{fg, bg}
	if st, ok := cache[key]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code, ok := ansiCodes[fg]; ok {
		st = st.Foreground(lipgloss.Color(code))
	}
	if code, ok := ansiCodes[bg]; ok {
		st = st.Background(lipgloss.Color(code))
	}
	cache[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	cache := make(map[stylePair]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			fg, bg := cell.Color, cell.Bg

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != fg || cell.Bg != bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(cache, fg, bg).Render(run.String()))
		}
	}
	return sb.String()
}
