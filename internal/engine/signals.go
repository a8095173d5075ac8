package engine

import (
	"context"
	"sync"
)

// State is the externally visible run state of a simulation.
type State int

const (
	Paused State = iota
	Running
	Stepping
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stepping:
		return "stepping"
	case Stopped:
		return "stopped"
	default:
		return "paused"
	}
}

// Signals is the run/pause/step/stop state shared by the controller and the
// workers. Waiters park on a condition variable; every transition broadcasts.
//
// Rounds are admitted as a whole: the first worker to pass AwaitRun for round
// p while running admits p for every worker, and Complete closes it. A pause
// issued mid-round therefore takes effect at the next round boundary.
type Signals struct {
	mu   sync.Mutex
	cond *sync.Cond

	running  bool
	stepping bool
	stopped  bool

	admitted  uint64
	completed uint64

	done   chan struct{}
	redraw chan struct{}
}

// NewSignals returns paused signals.
func NewSignals() *Signals {
	s := &Signals{
		done:   make(chan struct{}),
		redraw: make(chan struct{}, 1),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// SetRunning starts or pauses generation advance. Either way it cancels a
// pending step, so a start issued mid-step keeps running after the round.
func (s *Signals) SetRunning(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.running = on
	s.stepping = false
	s.cond.Broadcast()
}

// Step lets exactly one round run, then re-pauses in Complete.
func (s *Signals) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if !s.idleLocked() {
		return ErrBusy
	}
	s.running = true
	s.stepping = true
	s.cond.Broadcast()
	return nil
}

// Stop is terminal: it wakes every waiter and closes Done.
func (s *Signals) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.running = false
	s.stepping = false
	close(s.done)
	s.cond.Broadcast()
}

// Done is closed by Stop.
func (s *Signals) Done() <-chan struct{} { return s.done }

// Running reports whether generations are currently allowed to advance.
func (s *Signals) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stopped reports whether Stop has been called.
func (s *Signals) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// State summarises the signals as a single run state.
func (s *Signals) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.stopped:
		return Stopped
	case s.stepping:
		return Stepping
	case s.running:
		return Running
	default:
		return Paused
	}
}

// AwaitRun blocks the calling worker until round may execute. It returns
// false once the signals are stopped.
func (s *Signals) AwaitRun(round uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.stopped {
			return false
		}
		if s.admitted > round {
			return true
		}
		if s.running && s.admitted == round {
			s.admitted = round + 1
			s.cond.Broadcast()
			return true
		}
		s.cond.Wait()
	}
}

// Complete closes the admitted round. It re-pauses after a step and reports
// whether the simulation is still running.
func (s *Signals) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed++
	if s.stepping {
		s.stepping = false
		s.running = false
	}
	s.cond.Broadcast()
	return s.running
}

// Completed returns the number of closed rounds.
func (s *Signals) Completed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

func (s *Signals) idleLocked() bool {
	return !s.running && s.admitted == s.completed
}

// WithIdle runs fn while no round is running or in flight. Workers cannot be
// admitted until fn returns.
func (s *Signals) WithIdle(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if !s.idleLocked() {
		return ErrBusy
	}
	return fn()
}

// Quiesce pauses, waits for an in-flight round to close, then runs fn with
// admission held off.
func (s *Signals) Quiesce(ctx context.Context, fn func() error) error {
	stop := context.AfterFunc(ctx, s.wake)
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.stepping = false
	s.cond.Broadcast()
	if err := s.awaitIdleLocked(ctx); err != nil {
		return err
	}
	return fn()
}

// AwaitIdle blocks until no round is running or in flight.
func (s *Signals) AwaitIdle(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.wake)
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitIdleLocked(ctx)
}

func (s *Signals) awaitIdleLocked(ctx context.Context) error {
	for !s.idleLocked() {
		if s.stopped {
			return ErrStopped
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.cond.Wait()
	}
	if s.stopped {
		return ErrStopped
	}
	return nil
}

func (s *Signals) wake() {
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// NotifyRedraw raises the redraw signal. Pending notifications coalesce.
func (s *Signals) NotifyRedraw() {
	select {
	case s.redraw <- struct{}{}:
	default:
	}
}

// Redraw delivers one value per batch of coalesced notifications.
func (s *Signals) Redraw() <-chan struct{} { return s.redraw }
