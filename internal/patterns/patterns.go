// Package patterns registers the built-in seed shapes offered by Reset and
// LoadPattern. Import it for its side effects.
package patterns

import "lifecell/internal/core"

// Still lifes.
var (
	Block   = core.Pattern{Name: "block", Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}}
	Beehive = core.Pattern{Name: "beehive", Cells: [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 2}}}
)

// Oscillators.
var (
	Blinker = core.Pattern{Name: "blinker", Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}}}
	Toad    = core.Pattern{Name: "toad", Cells: [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}}}
	Beacon  = core.Pattern{Name: "beacon", Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {2, 3}, {3, 2}, {3, 3}}}
)

// Spaceships and methuselahs.
var (
	Glider     = core.Pattern{Name: "glider", Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}}
	LWSS       = core.Pattern{Name: "lwss", Cells: [][2]int{{0, 1}, {0, 4}, {1, 0}, {2, 0}, {2, 4}, {3, 0}, {3, 1}, {3, 2}, {3, 3}}}
	RPentomino = core.Pattern{Name: "r-pentomino", Cells: [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 1}}}
)

func init() {
	for _, p := range []core.Pattern{Block, Beehive, Blinker, Toad, Beacon, Glider, LWSS, RPentomino} {
		core.Register(p)
	}
}
