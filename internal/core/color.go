package core

// Color represents a color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for scene elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorNavy
	ColorSky
	ColorForest
)

// RGB is a plain 24-bit color value.
type RGB struct {
	R, G, B uint8
}

// paletteRGB holds the approximate terminal rendering of each palette entry.
var paletteRGB = map[Color]RGB{
	ColorBlack:         {0, 0, 0},
	ColorRed:           {205, 0, 0},
	ColorGreen:         {0, 205, 0},
	ColorYellow:        {205, 205, 0},
	ColorBlue:          {0, 0, 238},
	ColorMagenta:       {205, 0, 205},
	ColorCyan:          {0, 205, 205},
	ColorWhite:         {229, 229, 229},
	ColorBrightRed:     {255, 0, 0},
	ColorBrightGreen:   {0, 255, 0},
	ColorBrightYellow:  {255, 255, 0},
	ColorBrightBlue:    {92, 92, 255},
	ColorBrightMagenta: {255, 0, 255},
	ColorBrightCyan:    {0, 255, 255},
	ColorBrightWhite:   {255, 255, 255},
	ColorOrange:        {255, 135, 0},
	ColorGray:          {138, 138, 138},
	ColorBrown:         {135, 95, 0},
	ColorNavy:          {0, 0, 95},
	ColorSky:           {135, 215, 255},
	ColorForest:        {0, 95, 0},
}

// Palette returns every concrete palette color with its RGB value.
// ColorDefault is excluded since it means "terminal default".
func Palette() map[Color]RGB {
	out := make(map[Color]RGB, len(paletteRGB))
	for k, v := range paletteRGB {
		out[k] = v
	}
	return out
}
