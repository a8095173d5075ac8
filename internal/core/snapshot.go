package core

import (
	"bytes"
	"fmt"
)

// Snapshot is an immutable copy of the grid interior at one generation.
// Cells holds n*n values in row-major order, border excluded.
type Snapshot struct {
	Generation uint64
	N          int
	Cells      []uint8
}

// Alive reports the state of interior cell (i, j), 1-based.
func (s Snapshot) Alive(i, j int) bool {
	if i < 1 || i > s.N || j < 1 || j > s.N {
		return false
	}
	return s.Cells[(i-1)*s.N+(j-1)] != 0
}

// Population counts live cells.
func (s Snapshot) Population() int {
	count := 0
	for _, c := range s.Cells {
		count += int(c)
	}
	return count
}

// Equal reports whether two snapshots hold the same cells. The generation is
// not compared.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.N == o.N && bytes.Equal(s.Cells, o.Cells)
}

// Pack encodes the cells eight per byte, most significant bit first.
func (s Snapshot) Pack() []byte {
	out := make([]byte, (len(s.Cells)+7)/8)
	for idx, c := range s.Cells {
		if c != 0 {
			out[idx/8] |= 0x80 >> (idx % 8)
		}
	}
	return out
}

// UnpackSnapshot rebuilds a snapshot from bytes produced by Pack.
func UnpackSnapshot(generation uint64, n int, packed []byte) (Snapshot, error) {
	if n <= 0 {
		return Snapshot{}, fmt.Errorf("unpack snapshot: invalid size %d", n)
	}
	total := n * n
	if len(packed) != (total+7)/8 {
		return Snapshot{}, fmt.Errorf("unpack snapshot: %d bytes for %dx%d cells", len(packed), n, n)
	}
	cells := make([]uint8, total)
	for idx := range cells {
		if packed[idx/8]&(0x80>>(idx%8)) != 0 {
			cells[idx] = 1
		}
	}
	return Snapshot{Generation: generation, N: n, Cells: cells}, nil
}
