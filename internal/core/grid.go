package core

import (
	"errors"
	"fmt"
	"sync"

	pcore "lifecell/pkg/core"
)

// ErrOutOfBounds is returned when a coordinate lies on the border or outside
// the interior [1..n] range.
var ErrOutOfBounds = errors.New("cell outside grid interior")

// Grid stores two (n+2)×(n+2) generation buffers in row-major order. The outer
// ring is a permanently dead border so neighbour counting never special-cases
// edge cells.
type Grid struct {
	n      int
	stride int

	// mu guards the identity of cur and nxt. Worker-path methods (Alive,
	// NeighborCount, SetNext) never take it: they only run while the buffers
	// are stable, between two barrier releases.
	mu  sync.RWMutex
	cur []uint8
	nxt []uint8
}

// NewGrid allocates an all-dead grid with an n×n interior.
func NewGrid(n int) *Grid {
	if n <= 0 {
		n = 1
	}
	stride := n + 2
	return &Grid{
		n:      n,
		stride: stride,
		cur:    make([]uint8, stride*stride),
		nxt:    make([]uint8, stride*stride),
	}
}

// Size returns the interior edge length n.
func (g *Grid) Size() int { return g.n }

// Index returns the linear buffer index for interior or border coordinates.
func (g *Grid) Index(i, j int) int { return i*g.stride + j }

// Interior reports whether (i, j) is a real cell.
func (g *Grid) Interior(i, j int) bool {
	return i >= 1 && i <= g.n && j >= 1 && j <= g.n
}

// Alive reports the state of (i, j) in the current buffer.
func (g *Grid) Alive(i, j int) bool { return g.cur[g.Index(i, j)] != 0 }

// NeighborCount sums the eight cells around (i, j) in the current buffer.
func (g *Grid) NeighborCount(i, j int) int {
	c := g.cur
	s := g.stride
	up := (i-1)*s + j
	mid := i*s + j
	down := (i+1)*s + j
	return int(c[up-1]) + int(c[up]) + int(c[up+1]) +
		int(c[mid-1]) + int(c[mid+1]) +
		int(c[down-1]) + int(c[down]) + int(c[down+1])
}

// SetNext writes the next-generation state of (i, j). Each caller owns a
// disjoint set of coordinates, so no locking is needed.
func (g *Grid) SetNext(i, j int, alive bool) {
	g.nxt[g.Index(i, j)] = boolCell(alive)
}

// Swap exchanges the current and next buffers.
func (g *Grid) Swap() {
	g.mu.Lock()
	g.cur, g.nxt = g.nxt, g.cur
	g.mu.Unlock()
}

// Toggle flips the current state of an interior cell.
func (g *Grid) Toggle(i, j int) error {
	if !g.Interior(i, j) {
		return fmt.Errorf("toggle (%d,%d) on %dx%d grid: %w", i, j, g.n, g.n, ErrOutOfBounds)
	}
	g.mu.Lock()
	idx := g.Index(i, j)
	g.cur[idx] ^= 1
	g.mu.Unlock()
	return nil
}

// Set assigns the current state of an interior cell.
func (g *Grid) Set(i, j int, alive bool) error {
	if !g.Interior(i, j) {
		return fmt.Errorf("set (%d,%d) on %dx%d grid: %w", i, j, g.n, g.n, ErrOutOfBounds)
	}
	g.mu.Lock()
	g.cur[g.Index(i, j)] = boolCell(alive)
	g.mu.Unlock()
	return nil
}

// Clear kills every cell in both buffers.
func (g *Grid) Clear() {
	g.mu.Lock()
	clear(g.cur)
	clear(g.nxt)
	g.mu.Unlock()
}

// Randomize clears the grid and brings each interior cell alive with the
// given probability.
func (g *Grid) Randomize(r *pcore.RNG, density float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.cur)
	clear(g.nxt)
	for i := 1; i <= g.n; i++ {
		for j := 1; j <= g.n; j++ {
			if r.Chance(density) {
				g.cur[g.Index(i, j)] = 1
			}
		}
	}
}

// Stamp clears the grid and places the pattern centred in the interior. Cells
// that fall outside the interior are dropped.
func (g *Grid) Stamp(p Pattern) {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.cur)
	clear(g.nxt)
	h, w := p.Bounds()
	top := 1 + (g.n-h)/2
	left := 1 + (g.n-w)/2
	for _, c := range p.Cells {
		i, j := top+c[0], left+c[1]
		if g.Interior(i, j) {
			g.cur[g.Index(i, j)] = 1
		}
	}
}

// Snapshot copies the interior of the current buffer.
func (g *Grid) Snapshot(generation uint64) Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cells := make([]uint8, g.n*g.n)
	for i := 1; i <= g.n; i++ {
		row := g.Index(i, 1)
		copy(cells[(i-1)*g.n:i*g.n], g.cur[row:row+g.n])
	}
	return Snapshot{Generation: generation, N: g.n, Cells: cells}
}

// Restore overwrites the current buffer interior with the snapshot.
func (g *Grid) Restore(s Snapshot) error {
	if s.N != g.n || len(s.Cells) != g.n*g.n {
		return fmt.Errorf("restore %dx%d snapshot into %dx%d grid", s.N, s.N, g.n, g.n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.nxt)
	for i := 1; i <= g.n; i++ {
		row := g.Index(i, 1)
		copy(g.cur[row:row+g.n], s.Cells[(i-1)*g.n:i*g.n])
	}
	return nil
}

// Population counts live interior cells.
func (g *Grid) Population() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for _, c := range g.cur {
		count += int(c)
	}
	return count
}

// HasLivingCells reports whether at least one interior cell is alive.
func (g *Grid) HasLivingCells() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.cur {
		if c != 0 {
			return true
		}
	}
	return false
}

// BorderClear reports whether every border cell is dead in both buffers.
func (g *Grid) BorderClear() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	last := g.n + 1
	for k := 0; k <= last; k++ {
		for _, idx := range [4]int{g.Index(0, k), g.Index(last, k), g.Index(k, 0), g.Index(k, last)} {
			if g.cur[idx] != 0 || g.nxt[idx] != 0 {
				return false
			}
		}
	}
	return true
}

func boolCell(alive bool) uint8 {
	if alive {
		return 1
	}
	return 0
}
