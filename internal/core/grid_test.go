package core

import (
	"errors"
	"testing"

	pcore "lifecell/pkg/core"
)

func TestNewGridAllDead(t *testing.T) {
	g := NewGrid(7)
	if g.Size() != 7 {
		t.Fatalf("size %d, want 7", g.Size())
	}
	if g.Population() != 0 || g.HasLivingCells() {
		t.Fatal("fresh grid must be empty")
	}
	if !g.BorderClear() {
		t.Fatal("fresh grid border must be dead")
	}
}

func TestToggleRejectsBorder(t *testing.T) {
	g := NewGrid(5)
	for _, c := range [][2]int{{0, 0}, {0, 3}, {6, 3}, {3, 0}, {3, 6}, {-1, 2}, {2, 9}} {
		if err := g.Toggle(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("toggle %v: err=%v, want ErrOutOfBounds", c, err)
		}
		if err := g.Set(c[0], c[1], true); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("set %v: err=%v, want ErrOutOfBounds", c, err)
		}
	}
	if !g.BorderClear() {
		t.Fatal("rejected edits must not touch the border")
	}
}

func TestToggleFlipsCurrentOnly(t *testing.T) {
	g := NewGrid(5)
	if err := g.Toggle(1, 1); err != nil {
		t.Fatal(err)
	}
	if !g.Alive(1, 1) {
		t.Fatal("toggle should bring (1,1) alive")
	}
	if err := g.Toggle(1, 1); err != nil {
		t.Fatal(err)
	}
	if g.Alive(1, 1) {
		t.Fatal("second toggle should kill (1,1)")
	}
}

func TestNeighborCountReadsCurrentBuffer(t *testing.T) {
	g := NewGrid(5)
	for _, c := range [][2]int{{1, 1}, {1, 2}, {2, 1}} {
		_ = g.Set(c[0], c[1], true)
	}
	if got := g.NeighborCount(2, 2); got != 3 {
		t.Fatalf("neighbours of (2,2) = %d, want 3", got)
	}
	if got := g.NeighborCount(1, 1); got != 2 {
		t.Fatalf("neighbours of corner (1,1) = %d, want 2", got)
	}

	// Writes to the next buffer stay invisible until Swap.
	g.SetNext(3, 3, true)
	if g.Alive(3, 3) || g.NeighborCount(2, 2) != 3 {
		t.Fatal("next buffer leaked into current")
	}
	g.Swap()
	if !g.Alive(3, 3) {
		t.Fatal("swap should publish the next buffer")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	g := NewGrid(8)
	g.Randomize(pcore.NewRNG(3), 0.25)
	snap := g.Snapshot(12)
	if snap.Generation != 12 || snap.N != 8 || len(snap.Cells) != 64 {
		t.Fatalf("unexpected snapshot header %+v", snap)
	}
	if snap.Population() != g.Population() {
		t.Fatalf("snapshot population %d, grid %d", snap.Population(), g.Population())
	}

	g.Clear()
	if err := g.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if !g.Snapshot(12).Equal(snap) {
		t.Fatal("restore did not reproduce the snapshot")
	}
	if err := g.Restore(NewGrid(4).Snapshot(0)); err == nil {
		t.Fatal("restoring a mismatched size must fail")
	}
}

func TestRandomizeDensity(t *testing.T) {
	g := NewGrid(80)
	g.Randomize(pcore.NewRNG(42), 0.25)
	pop := g.Population()
	if pop < 1300 || pop > 1900 {
		t.Fatalf("population %d far from 25%% of 6400", pop)
	}
	if !g.BorderClear() {
		t.Fatal("randomize touched the border")
	}
}

func TestStampCentresPattern(t *testing.T) {
	g := NewGrid(5)
	g.Stamp(Pattern{Name: "bar", Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}}})
	for _, c := range [][2]int{{3, 2}, {3, 3}, {3, 4}} {
		if !g.Alive(c[0], c[1]) {
			t.Fatalf("expected %v alive", c)
		}
	}
	if g.Population() != 3 {
		t.Fatalf("population %d, want 3", g.Population())
	}
}
