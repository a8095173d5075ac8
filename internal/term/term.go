// Package term draws the simulation in a terminal with tcell and maps keys
// and mouse clicks onto controller commands.
package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"lifecell/internal/core"
	"lifecell/internal/ui"
)

// Controller is what the terminal view needs from a simulation.
type Controller interface {
	ui.Controller
	Snapshot() core.Snapshot
	Redraw() <-chan struct{}
	Err() error
}

const help = "space start/pause  n step  z/y undo/redo  -/+ speed  r random  c clear  q quit"

var (
	aliveStyle  = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	deadStyle   = tcell.StyleDefault.Background(tcell.ColorBlack)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	noticeStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

// Renderer owns a tcell screen for the lifetime of Run.
type Renderer struct {
	screen  tcell.Screen
	ctrl    Controller
	message string
	buttons tcell.ButtonMask
}

// New wraps an initialised screen.
func New(screen tcell.Screen, ctrl Controller) *Renderer {
	return &Renderer{screen: screen, ctrl: ctrl}
}

// Run draws every new generation and handles input until the user quits or
// ctx is done. It does not finalise the screen.
func (r *Renderer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	r.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if r.handle(ev) {
				return nil
			}
			r.Draw()
		case <-r.ctrl.Redraw():
			r.Draw()
		}
	}
}

// handle applies one event and reports whether the user asked to quit.
func (r *Renderer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return true
		}
		if a := keyAction(ev); a != ui.ActionNone {
			r.report(ui.Apply(r.ctrl, a))
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0 && r.buttons&tcell.Button1 == 0
		r.buttons = ev.Buttons()
		if !pressed {
			return false
		}
		x, y := ev.Position()
		// Cells are two columns wide.
		if i, j, ok := ui.CellAt(x/2, y, 1, r.ctrl.Snapshot().N); ok {
			r.report(r.ctrl.ToggleCell(i, j))
		}
	}
	return false
}

func keyAction(ev *tcell.EventKey) ui.Action {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ui.ActionToggleRun
	case tcell.KeyRune:
	default:
		return ui.ActionNone
	}
	switch ev.Rune() {
	case ' ':
		return ui.ActionToggleRun
	case 'n':
		return ui.ActionStep
	case 'z', 'u':
		return ui.ActionUndo
	case 'y':
		return ui.ActionRedo
	case '-', '_':
		return ui.ActionSlower
	case '+', '=':
		return ui.ActionFaster
	case 'r':
		return ui.ActionRandom
	case 'c':
		return ui.ActionClear
	}
	return ui.ActionNone
}

func (r *Renderer) report(err error) {
	r.message = ui.Describe(err)
}

// Draw paints the current snapshot and the status lines.
func (r *Renderer) Draw() {
	s := r.ctrl.Snapshot()
	r.screen.Clear()
	for i := 1; i <= s.N; i++ {
		for j := 1; j <= s.N; j++ {
			style := deadStyle
			if s.Alive(i, j) {
				style = aliveStyle
			}
			r.screen.SetContent((j-1)*2, i-1, ' ', nil, style)
			r.screen.SetContent((j-1)*2+1, i-1, ' ', nil, style)
		}
	}
	y := s.N + 1
	for _, line := range ui.StatusLines(r.ctrl, s.Population()) {
		r.print(0, y, line, textStyle)
		y++
	}
	msg := r.message
	if err := r.ctrl.Err(); err != nil && msg == "" {
		msg = ui.Describe(err)
	}
	if msg != "" {
		r.print(0, y, msg, noticeStyle)
		y++
	}
	r.print(0, y, help, textStyle)
	r.screen.Show()
}

func (r *Renderer) print(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Required reports the terminal size needed for an n×n grid.
func Required(n int) (w, h int) {
	return max(2*n, len(help)), n + 7
}

// CheckSize returns an error when the screen is too small for an n×n grid.
func CheckSize(screen tcell.Screen, n int) error {
	w, h := screen.Size()
	rw, rh := Required(n)
	if w < rw || h < rh {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d for a %dx%d grid", w, h, rw, rh, n, n)
	}
	return nil
}
