package life

import "lifecell/internal/core"

// Rule applies Conway's B3/S23 rule: a live cell survives with two or three
// neighbours, a dead cell is born with exactly three.
func Rule(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Step advances the grid by one generation on the calling goroutine. It is the
// sequential reference the concurrent engine is checked against.
func Step(g *core.Grid) {
	n := g.Size()
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			g.SetNext(i, j, Rule(g.Alive(i, j), g.NeighborCount(i, j)))
		}
	}
	g.Swap()
}

// Run advances the grid by the given number of generations.
func Run(g *core.Grid, generations int) {
	for range generations {
		Step(g)
	}
}
