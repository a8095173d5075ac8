// Package ui maps user input onto simulation commands and draws the control
// panel and grid overlay of the window build.
package ui

import (
	"errors"
	"fmt"

	"lifecell/internal/core"
	"lifecell/internal/engine"
)

// Controller is the part of the simulation the window drives.
type Controller interface {
	Start() error
	Pause()
	Step() error
	Undo() (bool, error)
	Redo() (bool, error)
	Reset(engine.ResetMode) error
	SetSpeed(int) error
	ToggleCell(i, j int) error

	State() engine.State
	Speed() core.Rate
	Generation() uint64
	CanUndo() bool
	CanRedo() bool
}

// Action is a command bound to a key and a panel button.
type Action int

const (
	ActionNone Action = iota
	ActionToggleRun
	ActionStep
	ActionUndo
	ActionRedo
	ActionSlower
	ActionFaster
	ActionRandom
	ActionClear
)

// PanelActions lists the panel buttons in display order.
var PanelActions = []Action{
	ActionToggleRun, ActionStep, ActionUndo, ActionRedo,
	ActionSlower, ActionFaster, ActionRandom, ActionClear,
}

// Label returns the button caption for a in the given state.
func (a Action) Label(state engine.State) string {
	switch a {
	case ActionToggleRun:
		if state == engine.Running {
			return "Pause [Space]"
		}
		return "Start [Space]"
	case ActionStep:
		return "Step [N]"
	case ActionUndo:
		return "Undo [Z]"
	case ActionRedo:
		return "Redo [Y]"
	case ActionSlower:
		return "Slower [-]"
	case ActionFaster:
		return "Faster [+]"
	case ActionRandom:
		return "Random [R]"
	case ActionClear:
		return "Clear [C]"
	}
	return ""
}

// Enabled reports whether a can currently do anything.
func (a Action) Enabled(c Controller) bool {
	state := c.State()
	if state == engine.Stopped {
		return false
	}
	switch a {
	case ActionStep:
		return state == engine.Paused
	case ActionUndo:
		return c.CanUndo()
	case ActionRedo:
		return c.CanRedo()
	case ActionSlower:
		return c.Speed() > core.MinRate
	case ActionFaster:
		return c.Speed() < core.MaxRate
	case ActionNone:
		return false
	}
	return true
}

// Apply runs a against c.
func Apply(c Controller, a Action) error {
	switch a {
	case ActionToggleRun:
		if c.State() == engine.Running {
			c.Pause()
			return nil
		}
		return c.Start()
	case ActionStep:
		return c.Step()
	case ActionUndo:
		_, err := c.Undo()
		return err
	case ActionRedo:
		_, err := c.Redo()
		return err
	case ActionSlower:
		return c.SetSpeed(int((c.Speed() - 1).Clamp()))
	case ActionFaster:
		return c.SetSpeed(int((c.Speed() + 1).Clamp()))
	case ActionRandom:
		return c.Reset(engine.ResetRandom)
	case ActionClear:
		return c.Reset(engine.ResetEmpty)
	}
	return nil
}

// Describe turns a command error into a short status message.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrEmptyGrid):
		return "Grid is empty: draw some cells first"
	case errors.Is(err, engine.ErrBusy):
		return "Pause the simulation first"
	case errors.Is(err, engine.ErrStopped):
		return "Simulation stopped"
	case errors.Is(err, engine.ErrGenerationFailed):
		return "A generation failed; press Space to retry"
	}
	return fmt.Sprintf("Error: %v", err)
}

// StatusLines summarises the simulation for the panel.
func StatusLines(c Controller, population int) []string {
	return []string{
		fmt.Sprintf("State: %s", c.State()),
		fmt.Sprintf("Generation: %d", c.Generation()),
		fmt.Sprintf("Population: %d", population),
		fmt.Sprintf("Speed: %s", c.Speed()),
	}
}

// CellAt maps a pixel position inside the grid view to 1-based cell
// coordinates.
func CellAt(x, y, scale, n int) (i, j int, ok bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	i, j = y/scale+1, x/scale+1
	if i > n || j > n {
		return 0, 0, false
	}
	return i, j, true
}
