package render

import (
	"image/color"
	"testing"

	"lifecell/internal/core"
)

func TestFillRGBA(t *testing.T) {
	s := core.Snapshot{N: 2, Cells: []uint8{1, 0, 0, 1}}
	p := Palette{Alive: color.RGBA{R: 1, G: 2, B: 3, A: 4}, Dead: color.RGBA{R: 9, A: 255}}
	buf := make([]byte, 16)
	if !FillRGBA(buf, s, p) {
		t.Fatal("fill rejected a matching buffer")
	}
	want := []byte{1, 2, 3, 4, 9, 0, 0, 255, 9, 0, 0, 255, 1, 2, 3, 4}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestFillRGBASizeMismatch(t *testing.T) {
	s := core.Snapshot{N: 2, Cells: []uint8{1, 0, 0, 1}}
	if FillRGBA(make([]byte, 12), s, DefaultPalette) {
		t.Fatal("fill accepted a short buffer")
	}
}
