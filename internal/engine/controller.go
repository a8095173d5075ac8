package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"lifecell/internal/config"
	"lifecell/internal/core"
	"lifecell/internal/history"
	pcore "lifecell/pkg/core"
)

// randomDensity is the share of live cells after a random reset.
const randomDensity = 0.25

// ResetMode selects how Reset reseeds the grid.
type ResetMode int

const (
	ResetRandom ResetMode = iota
	ResetEmpty
)

// ParseResetMode maps "random" or "empty" to a ResetMode.
func ParseResetMode(s string) (ResetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return ResetRandom, nil
	case "empty":
		return ResetEmpty, nil
	}
	return ResetRandom, fmt.Errorf("unknown reset mode %q", s)
}

func (m ResetMode) String() string {
	if m == ResetEmpty {
		return "empty"
	}
	return "random"
}

// Session describes a saved session found at startup.
type Session struct {
	Generation uint64
	Snapshots  int
	Paused     bool
	Speed      core.Rate
}

// Controller owns the grid, signals, barrier, worker pool, and history of
// one simulation session. It is the only type renderers talk to.
type Controller struct {
	cfg config.Config
	log *slog.Logger

	grid    *core.Grid
	signals *Signals
	barrier *Barrier
	pool    *Pool
	history *history.Log
	store   *history.FileStore
	rng     *pcore.RNG

	// view pairs buffer swaps and restores with the generation counter so a
	// snapshot never mixes the two.
	view       sync.RWMutex
	generation atomic.Uint64
	speed      atomic.Int64

	mu       sync.Mutex
	spawned  bool
	lastErr  error
	pending  *history.State
	shutdown bool
}

// New validates cfg, restores persisted settings, and builds every component
// of a session without starting the workers. A saved history of the same
// size is kept pending for Resume or Restart.
func New(cfg config.Config, logger *slog.Logger) (*Controller, error) {
	return newController(cfg, logger, nil)
}

func newController(cfg config.Config, logger *slog.Logger, rule RuleFunc) (*Controller, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	c := &Controller{
		log:     logger,
		grid:    core.NewGrid(cfg.Size),
		signals: NewSignals(),
		history: history.NewLog(cfg.HistoryCapacity),
		rng:     pcore.NewRNG(cfg.Seed),
	}
	if cfg.SettingsPath != "" {
		s, err := config.LoadSettings(cfg.SettingsPath)
		switch {
		case err == nil:
			cfg.Speed, cfg.Paused = s.Speed, s.Paused
		case errors.Is(err, fs.ErrNotExist):
		default:
			logger.Warn("settings not loaded, using defaults", "path", cfg.SettingsPath, "err", err)
		}
	}
	c.cfg = cfg
	c.speed.Store(int64(cfg.Speed))

	barrier, err := NewBarrier(cfg.WorkerCount(), c.advance)
	if err != nil {
		return nil, err
	}
	c.barrier = barrier
	c.pool, err = NewPool(c.grid, c.signals, barrier, PoolConfig{Rule: rule, Logger: logger})
	if err != nil {
		return nil, err
	}

	if cfg.HistoryPath != "" {
		c.store = history.NewFileStore(cfg.HistoryPath)
		c.loadHistory()
	}
	if c.pending == nil {
		if err := c.seed(cfg.InitialMode); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}
	logger.Info("simulation initialized", "size", cfg.Size, "workers", barrier.Parties(), "speed", core.Rate(cfg.Speed))
	return c, nil
}

func (c *Controller) loadHistory() {
	st, err := c.store.Load()
	switch {
	case errors.Is(err, history.ErrNoHistory):
		return
	case err != nil:
		c.log.Warn("history not loaded, starting empty", "path", c.store.Path, "err", err)
		return
	case st.Size != c.cfg.Size:
		c.log.Info("saved history has a different grid size, ignoring", "saved", st.Size, "size", c.cfg.Size)
		return
	case len(st.Snapshots) == 0:
		return
	}
	c.pending = &st
}

// seed prepares the initial grid of a fresh session.
func (c *Controller) seed(mode string) error {
	switch mode {
	case "", "random":
		c.grid.Randomize(c.rng, randomDensity)
	case "empty":
		c.grid.Clear()
	default:
		p, ok := core.Lookup(mode)
		if !ok {
			return fmt.Errorf("unknown initial mode %q", mode)
		}
		c.grid.Stamp(p)
	}
	c.generation.Store(0)
	c.history.Clear()
	c.history.Append(c.grid.Snapshot(0))
	return nil
}

// PreviousSession reports the saved session awaiting Resume or Restart.
func (c *Controller) PreviousSession() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Session{}, false
	}
	st := c.pending
	return Session{
		Generation: st.Snapshots[st.Cursor].Generation,
		Snapshots:  len(st.Snapshots),
		Paused:     c.cfg.Paused,
		Speed:      core.Rate(c.cfg.Speed),
	}, true
}

// Resume restores the saved session, running it again if it was running
// when it was saved.
func (c *Controller) Resume() error {
	c.mu.Lock()
	st := c.pending
	c.pending = nil
	c.mu.Unlock()
	if st == nil {
		return nil
	}
	err := c.signals.Quiesce(context.Background(), func() error {
		if err := c.history.Load(st.Snapshots, st.Cursor); err != nil {
			return err
		}
		cur, _ := c.history.Current()
		return c.restore(cur)
	})
	if err != nil {
		c.log.Warn("saved session not restored", "err", err)
		return c.Restart(ResetRandom)
	}
	c.signals.NotifyRedraw()
	c.log.Info("session resumed", "generation", c.Generation(), "snapshots", len(st.Snapshots))
	if !c.cfg.Paused {
		return c.Start()
	}
	return nil
}

// Restart discards the saved session and reseeds the grid.
func (c *Controller) Restart(mode ResetMode) error {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
	return c.Reset(mode)
}

func (c *Controller) spawn() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spawned {
		return nil
	}
	if err := c.pool.Start(); err != nil {
		return err
	}
	c.spawned = true
	return nil
}

// record stores the displayed grid as the entry for the current generation,
// so edits made while paused survive an undo.
func (c *Controller) record() error {
	c.history.Append(c.Snapshot())
	return nil
}

// Start runs generations continuously.
func (c *Controller) Start() error {
	if c.signals.Stopped() {
		return ErrStopped
	}
	if !c.grid.HasLivingCells() {
		return ErrEmptyGrid
	}
	if err := c.spawn(); err != nil {
		return err
	}
	if err := c.signals.WithIdle(c.record); err != nil && !errors.Is(err, ErrBusy) {
		return err
	}
	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
	c.signals.SetRunning(true)
	c.log.Debug("simulation started", "generation", c.Generation())
	return nil
}

// Pause stops advancing after the round in flight, if any.
func (c *Controller) Pause() {
	c.signals.SetRunning(false)
}

// Step runs exactly one generation while paused.
func (c *Controller) Step() error {
	if c.signals.Stopped() {
		return ErrStopped
	}
	if c.signals.Running() {
		return ErrBusy
	}
	if !c.grid.HasLivingCells() {
		return ErrEmptyGrid
	}
	if err := c.spawn(); err != nil {
		return err
	}
	if err := c.signals.WithIdle(c.record); err != nil {
		return err
	}
	return c.signals.Step()
}

// ToggleCell flips interior cell (i, j). It fails with ErrBusy while
// generations are advancing.
func (c *Controller) ToggleCell(i, j int) error {
	err := c.signals.WithIdle(func() error { return c.grid.Toggle(i, j) })
	if err == nil {
		c.signals.NotifyRedraw()
	}
	return err
}

// SetCell sets interior cell (i, j), as when painting with a drag.
func (c *Controller) SetCell(i, j int, alive bool) error {
	err := c.signals.WithIdle(func() error { return c.grid.Set(i, j, alive) })
	if err == nil {
		c.signals.NotifyRedraw()
	}
	return err
}

// SetSpeed changes the generation rate.
func (c *Controller) SetSpeed(rate int) error {
	if !core.Rate(rate).Valid() {
		return fmt.Errorf("%w: %d gen/s, want %d-%d", ErrInvalidSpeed, rate, core.MinRate, core.MaxRate)
	}
	c.speed.Store(int64(rate))
	return nil
}

// Speed returns the generation rate.
func (c *Controller) Speed() core.Rate { return core.Rate(c.speed.Load()) }

// Reset pauses, reseeds the grid, and restarts history at generation 0.
func (c *Controller) Reset(mode ResetMode) error {
	return c.reseed(mode.String())
}

// LoadPattern pauses and replaces the grid with a registered pattern.
func (c *Controller) LoadPattern(name string) error {
	if _, ok := core.Lookup(name); !ok {
		return fmt.Errorf("unknown pattern %q (have %s)", name, strings.Join(core.PatternNames(), ", "))
	}
	return c.reseed(name)
}

func (c *Controller) reseed(mode string) error {
	err := c.signals.Quiesce(context.Background(), func() error {
		c.view.Lock()
		defer c.view.Unlock()
		return c.seed(mode)
	})
	if err != nil {
		return err
	}
	c.signals.NotifyRedraw()
	c.log.Debug("grid reset", "mode", mode)
	return nil
}

// Undo pauses and restores the previous generation in the history. It
// reports whether the grid changed.
func (c *Controller) Undo() (bool, error) {
	return c.travel(c.history.Undo)
}

// Redo pauses and restores the next generation in the history.
func (c *Controller) Redo() (bool, error) {
	return c.travel(c.history.Redo)
}

func (c *Controller) travel(move func() (core.Snapshot, bool)) (bool, error) {
	moved := false
	err := c.signals.Quiesce(context.Background(), func() error {
		snap, ok := move()
		if !ok {
			return nil
		}
		moved = true
		return c.restore(snap)
	})
	if moved && err == nil {
		c.signals.NotifyRedraw()
	}
	return moved, err
}

func (c *Controller) restore(s core.Snapshot) error {
	c.view.Lock()
	defer c.view.Unlock()
	if err := c.grid.Restore(s); err != nil {
		return err
	}
	c.generation.Store(s.Generation)
	return nil
}

// CanUndo reports whether Undo would change the grid.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would change the grid.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// HistoryEntries returns the retained snapshots, oldest first.
func (c *Controller) HistoryEntries() []core.Snapshot { return c.history.Entries() }

// Snapshot returns a read-only copy of the displayed grid.
func (c *Controller) Snapshot() core.Snapshot {
	c.view.RLock()
	defer c.view.RUnlock()
	return c.grid.Snapshot(c.generation.Load())
}

// Generation returns the displayed generation.
func (c *Controller) Generation() uint64 { return c.generation.Load() }

// Size returns the interior edge length.
func (c *Controller) Size() int { return c.grid.Size() }

// Workers returns the number of worker goroutines.
func (c *Controller) Workers() int { return c.pool.Workers() }

// State returns the run state.
func (c *Controller) State() State { return c.signals.State() }

// Redraw delivers a value whenever a new grid is ready to draw.
func (c *Controller) Redraw() <-chan struct{} { return c.signals.Redraw() }

// WaitIdle blocks until no generation is running or in flight.
func (c *Controller) WaitIdle(ctx context.Context) error { return c.signals.AwaitIdle(ctx) }

// Err returns the last failed generation since the last Start, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// advance is the barrier action, run by the last worker of each round while
// every other worker is parked.
func (c *Controller) advance(clean bool) {
	if !clean {
		err := fmt.Errorf("%w: round after generation %d discarded", ErrGenerationFailed, c.generation.Load())
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.log.Error("generation failed", "generation", c.generation.Load(), "policy", c.cfg.FaultPolicy)
		if c.cfg.FaultPolicy != config.FaultRetry {
			c.signals.SetRunning(false)
		}
		c.signals.Complete()
		c.signals.NotifyRedraw()
		return
	}

	c.view.Lock()
	c.grid.Swap()
	gen := c.generation.Add(1)
	c.view.Unlock()

	c.history.Append(c.grid.Snapshot(gen))
	c.signals.NotifyRedraw()
	if !c.signals.Complete() {
		return
	}

	t := time.NewTimer(c.Speed().Interval())
	defer t.Stop()
	select {
	case <-t.C:
	case <-c.signals.Done():
	}
}

// Shutdown stops the workers, waits for them to exit, and persists history
// and settings. Persistence failures are logged only. It returns an error if
// the workers do not exit before ctx is done.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		return nil
	}
	c.shutdown = true
	c.mu.Unlock()

	wasRunning := c.signals.Running()
	c.signals.Stop()
	c.barrier.Break()
	if err := c.pool.Wait(ctx); err != nil {
		c.log.Error("worker pool did not stop", "err", err)
		return err
	}

	// Edits made while paused only live in the grid; fold them into the
	// entry under the cursor so the saved session shows what was displayed.
	if cur, ok := c.history.Current(); !ok || !cur.Equal(c.Snapshot()) {
		_ = c.record()
	}

	var errs []error
	if c.store != nil {
		st := history.State{Size: c.grid.Size(), Cursor: c.history.Cursor(), Snapshots: c.history.Entries()}
		if err := c.store.Save(st); err != nil {
			errs = append(errs, fmt.Errorf("history: %w", err))
		}
	}
	if c.cfg.SettingsPath != "" {
		s := config.Settings{Speed: int(c.Speed()), Paused: !wasRunning}
		if err := config.SaveSettings(c.cfg.SettingsPath, s); err != nil {
			errs = append(errs, fmt.Errorf("settings: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.log.Warn("session not fully saved", "err", err)
	}
	c.log.Info("simulation stopped", "generation", c.Generation())
	return nil
}
