//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"lifecell/internal/core"
)

// GridPainter keeps one n×n image in sync with grid snapshots.
type GridPainter struct {
	n       int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for an n×n interior.
func NewGridPainter(n int, p Palette) *GridPainter {
	return &GridPainter{n: n, img: ebiten.NewImage(n, n), buf: make([]byte, 4*n*n), palette: p}
}

// Update uploads the snapshot. Snapshots of another size are ignored.
func (gp *GridPainter) Update(s core.Snapshot) {
	if s.N != gp.n || !FillRGBA(gp.buf, s, gp.palette) {
		return
	}
	gp.img.WritePixels(gp.buf)
}

// Draw paints the last uploaded snapshot scaled by scale.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the interior edge length.
func (gp *GridPainter) Size() int { return gp.n }
