package render

import (
	"image/color"

	"lifecell/internal/core"
)

// Palette holds the colours used for live and dead cells.
type Palette struct {
	Alive color.RGBA
	Dead  color.RGBA
}

// DefaultPalette draws white cells on black.
var DefaultPalette = Palette{
	Alive: color.RGBA{R: 235, G: 235, B: 240, A: 255},
	Dead:  color.RGBA{R: 12, G: 12, B: 16, A: 255},
}

// FillRGBA writes one RGBA pixel per cell of s into buf, row-major. It
// reports false when buf does not hold exactly 4*n*n bytes.
func FillRGBA(buf []byte, s core.Snapshot, p Palette) bool {
	if len(buf) != 4*len(s.Cells) {
		return false
	}
	for i, c := range s.Cells {
		col := p.Dead
		if c != 0 {
			col = p.Alive
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
	return true
}
