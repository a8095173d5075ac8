//go:build ebiten

package app

import (
	"lifecell/internal/core"
	"lifecell/internal/engine"
	"lifecell/internal/render"
	"lifecell/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a simulation controller to the ebiten.Game interface. The
// controller advances generations on its own workers; the game only reads
// snapshots and forwards input.
type Game struct {
	ctrl    *engine.Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	snap  core.Snapshot
	scale int
	hudW  int

	painting bool
	paintTo  bool
}

// New constructs a Game for the provided controller.
func New(ctrl *engine.Controller, cfg *Config) *Game {
	n := ctrl.Size()
	g := &Game{
		ctrl:    ctrl,
		painter: render.NewGridPainter(n, render.DefaultPalette),
		overlay: ui.NewOverlay(n, cfg.Scale),
		hud:     ui.NewHUD(ctrl, cfg.HUDWidth),
		scale:   cfg.Scale,
		hudW:    cfg.HUDWidth,
	}
	g.refresh()
	return g
}

func (g *Game) refresh() {
	g.snap = g.ctrl.Snapshot()
	g.painter.Update(g.snap)
}

var keyActions = []struct {
	keys   []ebiten.Key
	action ui.Action
}{
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}, ui.ActionToggleRun},
	{[]ebiten.Key{ebiten.KeyN}, ui.ActionStep},
	{[]ebiten.Key{ebiten.KeyZ, ebiten.KeyU}, ui.ActionUndo},
	{[]ebiten.Key{ebiten.KeyY}, ui.ActionRedo},
	{[]ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}, ui.ActionSlower},
	{[]ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}, ui.ActionFaster},
	{[]ebiten.Key{ebiten.KeyR}, ui.ActionRandom},
	{[]ebiten.Key{ebiten.KeyC}, ui.ActionClear},
}

// Update handles per-frame input and picks up new generations.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.report(ui.Apply(g.ctrl, ka.action))
			}
		}
	}
	g.overlay.Update()
	g.report(g.hud.Update(g.gridPixels()))
	g.handleMouse()

	select {
	case <-g.ctrl.Redraw():
		g.refresh()
	default:
	}
	if err := g.ctrl.Err(); err != nil {
		g.hud.SetMessage(ui.Describe(err))
	}
	return nil
}

// handleMouse toggles the clicked cell and paints while dragging.
func (g *Game) handleMouse() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.painting = false
		return
	}
	mx, my := ebiten.CursorPosition()
	i, j, ok := ui.CellAt(mx, my, g.scale, g.snap.N)
	if !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.painting = true
		g.paintTo = !g.snap.Alive(i, j)
		g.report(g.ctrl.ToggleCell(i, j))
		return
	}
	if g.painting && g.snap.Alive(i, j) != g.paintTo {
		g.report(g.ctrl.SetCell(i, j, g.paintTo))
	}
}

func (g *Game) report(err error) {
	if err != nil {
		g.hud.SetMessage(ui.Describe(err))
	}
}

func (g *Game) gridPixels() int { return g.snap.N * g.scale }

// Draw renders the latest snapshot, the overlay, and the control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen)
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.gridPixels(), h, g.snap.Population())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.gridPixels()
	h := side
	if g.hudW > 0 && h < ui.PanelHeight {
		h = ui.PanelHeight
	}
	return side + g.hudW, h
}
