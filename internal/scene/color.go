package scene

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors covers the CSS names generators commonly emit.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"red":     "#FF0000",
	"green":   "#008000",
	"lime":    "#00FF00",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"gold":    "#FFD700",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"magenta": "#FF00FF",
	"cyan":    "#00FFFF",
	"pink":    "#FFC0CB",
	"brown":   "#8B4513",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#C0C0C0",
	"navy":    "#000080",
	"skyblue": "#87CEEB",
	"teal":    "#008080",
}

// ParseColor resolves a color token (#rgb, #rrggbb, rgb(r,g,b) or a CSS name).
func ParseColor(token string) (colorful.Color, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if hex, ok := namedColors[t]; ok {
		t = strings.ToLower(hex)
	}
	if strings.HasPrefix(t, "rgb(") && strings.HasSuffix(t, ")") {
		var r, g, b int
		if _, err := fmt.Sscanf(strings.ReplaceAll(t, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return colorful.Color{}, fmt.Errorf("scene: color %q: %w", token, err)
		}
		return colorful.Color{R: clampUnit(r), G: clampUnit(g), B: clampUnit(b)}, nil
	}
	if !strings.HasPrefix(t, "#") && (len(t) == 3 || len(t) == 6) {
		t = "#" + t
	}
	c, err := colorful.Hex(t)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("scene: color %q: %w", token, err)
	}
	return c, nil
}

// ColorOr resolves token, falling back to def when it cannot be parsed.
func ColorOr(token string, def colorful.Color) colorful.Color {
	c, err := ParseColor(token)
	if err != nil {
		return def
	}
	return c
}

func clampUnit(v int) float64 {
	return float64(min(max(v, 0), 255)) / 255
}

// Theme is a resolved background treatment.
type Theme struct {
	Name       string
	Background colorful.Color
	Text       colorful.Color
}

var themes = map[string]struct{ bg, text string }{
	"default":    {"#87CEEB", "#000000"},
	"space":      {"#0B0B2B", "#FFFFFF"},
	"forest":     {"#2E5E2E", "#FFFFFF"},
	"underwater": {"#1B4F8A", "#FFFFFF"},
	"cyberpunk":  {"#0A0A0F", "#00FFFF"},
	"desert":     {"#EDC9AF", "#000000"},
	"night":      {"#101020", "#FFFFFF"},
}

// ResolveTheme maps a theme name to its colors. Unknown names use the default theme.
func ResolveTheme(name string) Theme {
	key := strings.ToLower(strings.TrimSpace(name))
	t, ok := themes[key]
	if !ok {
		key = DefaultTheme
		t = themes[key]
	}
	bg, _ := colorful.Hex(t.bg)
	fg, _ := colorful.Hex(t.text)
	return Theme{Name: key, Background: bg, Text: fg}
}

// Themes lists the known theme names.
func Themes() []string {
	return []string{"default", "space", "forest", "underwater", "cyberpunk", "desert", "night"}
}
