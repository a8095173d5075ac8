//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional guides on top of the grid: cell separators and the
// cell under the cursor.
type Overlay struct {
	n         int
	scale     int
	showLines bool
	showHover bool
	pixel     *ebiten.Image
}

// NewOverlay constructs an overlay for an n×n grid drawn at scale.
func NewOverlay(n, scale int) *Overlay {
	o := &Overlay{n: n, scale: scale, showLines: scale >= 6, showHover: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the guides with G (lines) and H (hover).
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showLines = !o.showLines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHover = !o.showHover
	}
}

// Draw paints the enabled guides.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil {
		return
	}
	span := float64(o.n * o.scale)
	if o.showLines {
		line := color.RGBA{R: 40, G: 40, B: 48, A: 255}
		for k := 1; k < o.n; k++ {
			at := float64(k * o.scale)
			o.rect(screen, at, 0, 1, span, line)
			o.rect(screen, 0, at, span, 1, line)
		}
	}
	if o.showHover {
		mx, my := ebiten.CursorPosition()
		if i, j, ok := CellAt(mx, my, o.scale, o.n); ok {
			s := float64(o.scale)
			o.rect(screen, float64(j-1)*s, float64(i-1)*s, s, s, color.RGBA{R: 90, G: 140, B: 220, A: 90})
		}
	}
}

func (o *Overlay) rect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
