package render

import (
	"math"
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/forge-studio/internal/core"
)

// Cells draws onto a terminal character grid. Each cell covers an equal
// slice of the logical surface.
type Cells struct {
	screen *core.Screen
	sx, sy float64 // cells per logical pixel
}

// NewCells creates a cell surface of cols x rows.
func NewCells(cols, rows int) *Cells {
	c := &Cells{screen: core.NewScreen(cols, rows)}
	c.fit()
	return c
}

// Screen returns the underlying buffer.
func (c *Cells) Screen() *core.Screen {
	return c.screen
}

// Resize changes the grid size.
func (c *Cells) Resize(cols, rows int) {
	c.screen.Resize(cols, rows)
	c.fit()
}

func (c *Cells) fit() {
	c.sx = float64(c.screen.Width()) / core.SurfaceW
	c.sy = float64(c.screen.Height()) / core.SurfaceH
}

// ToLogical maps a cell to the logical point at its centre.
func (c *Cells) ToLogical(col, row int) core.Point {
	return core.Pt((float64(col)+0.5)/c.sx, (float64(row)+0.5)/c.sy)
}

func (c *Cells) Clear(bg colorful.Color) {
	c.screen.Fill(' ', Nearest(bg))
}

func (c *Cells) FillRect(r core.Rect, col colorful.Color) {
	c.fill(r, col, r.Contains)
}

func (c *Cells) FillCircle(ci core.Circle, col colorful.Color) {
	c.fill(ci.Bounds(), col, ci.Contains)
}

// fill paints every visible cell whose centre is inside the shape. Shapes
// smaller than a cell still paint the cell under their centre.
func (c *Cells) fill(bounds core.Rect, col colorful.Color, inside func(core.Point) bool) {
	bg := Nearest(col)
	w, h := c.screen.Width(), c.screen.Height()
	x0, x1 := edge(bounds.X*c.sx, w), edge(bounds.Right()*c.sx, w)
	y0, y1 := edge(bounds.Y*c.sy, h), edge(bounds.Bottom()*c.sy, h)
	painted := false
	for y := max(y0, 0); y <= min(y1, h-1); y++ {
		for x := max(x0, 0); x <= min(x1, w-1); x++ {
			if inside(c.ToLogical(x, y)) {
				c.screen.Paint(x, y, bg)
				painted = true
			}
		}
	}
	if !painted {
		ctr := bounds.Center()
		c.screen.Paint(edge(ctr.X*c.sx, w), edge(ctr.Y*c.sy, h), bg)
	}
}

func (c *Cells) StrokeRect(r core.Rect, col colorful.Color) {
	w, h := c.screen.Width(), c.screen.Height()
	x0, x1 := edge(r.X*c.sx, w), edge(r.Right()*c.sx, w)
	y0, y1 := edge(r.Y*c.sy, h), edge(r.Bottom()*c.sy, h)
	fg := Nearest(col)
	if x1-x0 < 1 || y1-y0 < 1 {
		c.screen.SetColor(x0, y0, '@', fg)
		return
	}
	for y := max(y0, 0); y <= min(y1, h-1); y++ {
		for x := max(x0, 0); x <= min(x1, w-1); x++ {
			if x == x0 || x == x1 || y == y0 || y == y1 {
				c.screen.SetColor(x, y, '░', fg)
			}
		}
	}
}

// edge converts a cell coordinate to an index in [-1, n]. Both ends lie just
// off the grid, so edges beyond the screen are never drawn.
func edge(v float64, n int) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Max(-1, math.Min(v, float64(n))))
}

func (c *Cells) Text(x, y float64, s string, col colorful.Color, align Align) {
	n := len([]rune(s))
	cx := int(x * c.sx)
	switch align {
	case AlignCenter:
		cx -= n / 2
	case AlignRight:
		cx -= n
	}
	row := int(y*c.sy) - 1
	c.screen.DrawTextColor(max(cx, 0), max(row, 0), s, Nearest(col))
}

type paletteEntry struct {
	color core.Color
	value colorful.Color
}

var (
	paletteOnce sync.Once
	palette     []paletteEntry
)

func loadPalette() {
	for k, rgb := range core.Palette() {
		palette = append(palette, paletteEntry{
			color: k,
			value: colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255},
		})
	}
	sort.Slice(palette, func(i, j int) bool { return palette[i].color < palette[j].color })
}

// Nearest returns the palette color closest to c in Lab space.
func Nearest(c colorful.Color) core.Color {
	paletteOnce.Do(loadPalette)
	best := core.ColorDefault
	bestD := 0.0
	for _, e := range palette {
		d := c.DistanceLab(e.value)
		if best == core.ColorDefault || d < bestD {
			best, bestD = e.color, d
		}
	}
	return best
}
