package life

import (
	"testing"

	"lifecell/internal/core"
)

func place(t *testing.T, g *core.Grid, cells ...[2]int) {
	t.Helper()
	for _, c := range cells {
		if err := g.Set(c[0], c[1], true); err != nil {
			t.Fatalf("set %v: %v", c, err)
		}
	}
}

func expectAlive(t *testing.T, g *core.Grid, label string, cells ...[2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, c := range cells {
		expects[c] = true
	}
	n := g.Size()
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			alive := g.Alive(i, j)
			if expects[[2]int{i, j}] != alive {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", label, i, j, alive, !alive)
			}
		}
	}
}

func TestRule(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantLive := n == 2 || n == 3
		if got := Rule(true, n); got != wantLive {
			t.Fatalf("alive with %d neighbours: got %v", n, got)
		}
		wantBorn := n == 3
		if got := Rule(false, n); got != wantBorn {
			t.Fatalf("dead with %d neighbours: got %v", n, got)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := core.NewGrid(5)
	place(t, g, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4})

	Step(g)
	expectAlive(t, g, "after first step", [2]int{2, 3}, [2]int{3, 3}, [2]int{4, 3})

	Step(g)
	expectAlive(t, g, "after second step", [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4})
}

func TestBlockIsStill(t *testing.T) {
	g := core.NewGrid(4)
	block := [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	place(t, g, block...)

	for gen := 1; gen <= 10; gen++ {
		Step(g)
		expectAlive(t, g, "block", block...)
	}
}

func TestGliderTranslates(t *testing.T) {
	g := core.NewGrid(10)
	glider := [][2]int{{2, 3}, {3, 4}, {4, 2}, {4, 3}, {4, 4}}
	place(t, g, glider...)

	Run(g, 4)

	moved := make([][2]int, len(glider))
	for k, c := range glider {
		moved[k] = [2]int{c[0] + 1, c[1] + 1}
	}
	expectAlive(t, g, "glider after 4 generations", moved...)
}

func TestBorderStaysDead(t *testing.T) {
	g := core.NewGrid(6)
	for i := 1; i <= 6; i++ {
		place(t, g, [2]int{1, i}, [2]int{6, i}, [2]int{i, 1}, [2]int{i, 6})
	}
	for gen := 0; gen < 20; gen++ {
		Step(g)
		if !g.BorderClear() {
			t.Fatalf("border touched at generation %d", gen+1)
		}
	}
}
