// Package render draws a scene and its interaction state onto a Surface.
// Surfaces work in logical 800x600 coordinates; scaling to the output medium
// is the surface's job.
package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

// Align positions text relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D drawing target in logical coordinates.
type Surface interface {
	Clear(bg colorful.Color)
	FillRect(r core.Rect, c colorful.Color)
	FillCircle(c core.Circle, col colorful.Color)
	StrokeRect(r core.Rect, c colorful.Color)
	// Text draws s with its baseline at y.
	Text(x, y float64, s string, c colorful.Color, align Align)
}

var (
	outlineColor = colorful.Color{R: 1, G: 1, B: 1}
	fallbackFill = colorful.Color{R: 0.53, G: 0.53, B: 0.53}
)

// Frame draws one frame: background, title and status, objects in declared
// order (collected ones are skipped), the player outline, then score and lives.
// It only reads its arguments, so repeated calls produce the same output.
func Frame(sc scene.Scene, st engine.State, dst Surface) {
	sc = sc.Normalize()
	theme := scene.ResolveTheme(sc.Theme)

	dst.Clear(theme.Background)

	title := sc.Title
	if title == "" {
		title = "Game"
	}
	dst.Text(10, 30, title, theme.Text, AlignLeft)
	dst.Text(core.SurfaceW-10, 30, statusLabel(sc, st), theme.Text, AlignRight)

	player := -1
	for i, o := range sc.Objects {
		if st.IsCollected(i) {
			continue
		}
		fill := scene.ColorOr(o.Color, fallbackFill)
		switch o.Shape {
		case scene.ShapeCircle:
			dst.FillCircle(core.Circle{X: o.X, Y: o.Y, R: o.Radius}, fill)
		default:
			dst.FillRect(core.NewRect(o.X, o.Y, o.Width, o.Height), fill)
		}
		if o.Behavior == scene.BehaviorPlayer && player < 0 {
			player = i
		}
	}
	if player >= 0 {
		dst.StrokeRect(sc.Objects[player].Bounds(), outlineColor)
	}

	dst.Text(10, core.SurfaceH-20, fmt.Sprintf("Score: %d  Lives: %d", st.Score, st.Lives), theme.Text, AlignLeft)

	switch st.Status {
	case engine.StatusWon:
		dst.Text(core.SurfaceW/2, core.SurfaceH/2, "You Win!", theme.Text, AlignCenter)
	case engine.StatusLost:
		dst.Text(core.SurfaceW/2, core.SurfaceH/2, "Game Over", theme.Text, AlignCenter)
	}
}

func statusLabel(sc scene.Scene, st engine.State) string {
	kind := string(sc.Kind)
	if kind == "" {
		kind = "game"
	}
	return strings.ToUpper(kind + " " + string(st.Status))
}
