package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifecell/internal/core"
	"lifecell/internal/engine"
)

type fakeController struct {
	state    engine.State
	speed    core.Rate
	calls    []string
	reset    engine.ResetMode
	canUndo  bool
	startErr error
}

func (f *fakeController) Start() error              { f.calls = append(f.calls, "start"); return f.startErr }
func (f *fakeController) Pause()                    { f.calls = append(f.calls, "pause") }
func (f *fakeController) Step() error               { f.calls = append(f.calls, "step"); return nil }
func (f *fakeController) Undo() (bool, error)       { f.calls = append(f.calls, "undo"); return true, nil }
func (f *fakeController) Redo() (bool, error)       { f.calls = append(f.calls, "redo"); return false, nil }
func (f *fakeController) ToggleCell(int, int) error { return nil }
func (f *fakeController) Reset(m engine.ResetMode) error {
	f.calls = append(f.calls, "reset")
	f.reset = m
	return nil
}
func (f *fakeController) SetSpeed(r int) error {
	if !core.Rate(r).Valid() {
		return engine.ErrInvalidSpeed
	}
	f.speed = core.Rate(r)
	return nil
}
func (f *fakeController) State() engine.State { return f.state }
func (f *fakeController) Speed() core.Rate    { return f.speed }
func (f *fakeController) Generation() uint64  { return 12 }
func (f *fakeController) CanUndo() bool       { return f.canUndo }
func (f *fakeController) CanRedo() bool       { return false }

func TestApplyToggleRun(t *testing.T) {
	f := &fakeController{state: engine.Paused, speed: 5}
	require.NoError(t, Apply(f, ActionToggleRun))
	f.state = engine.Running
	require.NoError(t, Apply(f, ActionToggleRun))
	require.Equal(t, []string{"start", "pause"}, f.calls)
	require.Equal(t, "Start [Space]", ActionToggleRun.Label(engine.Paused))
	require.Equal(t, "Pause [Space]", ActionToggleRun.Label(engine.Running))
}

func TestApplySpeedClamps(t *testing.T) {
	f := &fakeController{speed: core.MaxRate}
	require.NoError(t, Apply(f, ActionFaster))
	require.EqualValues(t, core.MaxRate, f.speed)
	require.False(t, ActionFaster.Enabled(f))

	f.speed = core.MinRate
	require.NoError(t, Apply(f, ActionSlower))
	require.EqualValues(t, core.MinRate, f.speed)
	require.False(t, ActionSlower.Enabled(f))
	require.True(t, ActionFaster.Enabled(f))
}

func TestApplyReset(t *testing.T) {
	f := &fakeController{}
	require.NoError(t, Apply(f, ActionClear))
	require.Equal(t, engine.ResetEmpty, f.reset)
	require.NoError(t, Apply(f, ActionRandom))
	require.Equal(t, engine.ResetRandom, f.reset)
	require.NoError(t, Apply(f, ActionUndo))
	require.NoError(t, Apply(f, ActionRedo))
	require.NoError(t, Apply(f, ActionNone))
	require.Equal(t, []string{"reset", "reset", "undo", "redo"}, f.calls)
}

func TestEnabled(t *testing.T) {
	f := &fakeController{state: engine.Running, speed: 5}
	require.False(t, ActionStep.Enabled(f))
	require.False(t, ActionUndo.Enabled(f))
	f.canUndo = true
	require.True(t, ActionUndo.Enabled(f))
	f.state = engine.Stopped
	require.False(t, ActionToggleRun.Enabled(f))
}

func TestDescribe(t *testing.T) {
	f := &fakeController{startErr: engine.ErrEmptyGrid}
	require.Contains(t, Describe(Apply(f, ActionToggleRun)), "empty")
	require.Empty(t, Describe(nil))
	require.Contains(t, Describe(engine.ErrBusy), "Pause")
}

func TestStatusLines(t *testing.T) {
	f := &fakeController{state: engine.Paused, speed: 7}
	require.Equal(t, []string{"State: paused", "Generation: 12", "Population: 3", "Speed: 7 gen/s"}, StatusLines(f, 3))
}

func TestCellAt(t *testing.T) {
	i, j, ok := CellAt(25, 5, 10, 30)
	require.True(t, ok)
	require.Equal(t, 1, i)
	require.Equal(t, 3, j)
	_, _, ok = CellAt(300, 5, 10, 30)
	require.False(t, ok)
	_, _, ok = CellAt(-1, 5, 10, 30)
	require.False(t, ok)
}
