package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/forge-studio/internal/core"
)

// Raster is an in-memory RGBA surface.
type Raster struct {
	img   *image.RGBA
	scale float64
}

// NewRaster creates a raster of the logical surface size times scale.
func NewRaster(scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(core.SurfaceW * scale))
	h := int(math.Round(core.SurfaceH * scale))
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
	}
}

// Image returns the underlying image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// EncodePNG writes the raster as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// PNG returns the raster as PNG bytes.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Raster) px(v float64) int {
	return int(math.Round(v * r.scale))
}

func (r *Raster) rect(rc core.Rect) image.Rectangle {
	return image.Rect(r.px(rc.X), r.px(rc.Y), r.px(rc.Right()), r.px(rc.Bottom())).Intersect(r.img.Bounds())
}

func (r *Raster) Clear(bg colorful.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(bg.Clamped()), image.Point{}, draw.Src)
}

func (r *Raster) FillRect(rc core.Rect, c colorful.Color) {
	draw.Draw(r.img, r.rect(rc), image.NewUniform(c.Clamped()), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(c core.Circle, col colorful.Color) {
	bounds := r.rect(c.Bounds())
	cr, cg, cb := col.Clamped().RGB255()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := core.Pt((float64(x)+0.5)/r.scale, (float64(y)+0.5)/r.scale)
			if !c.Contains(p) {
				continue
			}
			i := r.img.PixOffset(x, y)
			r.img.Pix[i+0] = cr
			r.img.Pix[i+1] = cg
			r.img.Pix[i+2] = cb
			r.img.Pix[i+3] = 0xff
		}
	}
}

// StrokeRect draws a two pixel outline just outside rc.
func (r *Raster) StrokeRect(rc core.Rect, c colorful.Color) {
	const w = 2
	src := image.NewUniform(c.Clamped())
	b := image.Rect(r.px(rc.X)-w, r.px(rc.Y)-w, r.px(rc.Right())+w, r.px(rc.Bottom())+w)
	edges := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+w),
		image.Rect(b.Min.X, b.Max.Y-w, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Max.Y),
		image.Rect(b.Max.X-w, b.Min.Y, b.Max.X, b.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(r.img, e.Intersect(r.img.Bounds()), src, image.Point{}, draw.Src)
	}
}

func (r *Raster) Text(x, y float64, s string, c colorful.Color, align Align) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.Clamped()),
		Face: basicfont.Face7x13,
	}
	px := fixed.I(r.px(x))
	switch align {
	case AlignCenter:
		px -= d.MeasureString(s) / 2
	case AlignRight:
		px -= d.MeasureString(s)
	}
	d.Dot = fixed.Point26_6{X: px, Y: fixed.I(r.px(y))}
	d.DrawString(s)
}
