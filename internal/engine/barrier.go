package engine

import (
	"fmt"
	"sync"
)

// Barrier is a cyclic rendezvous for a fixed number of parties. The last
// party to arrive in a round runs the action exactly once, then every party
// of that round is released together.
type Barrier struct {
	mu     sync.Mutex
	cond   *sync.Cond
	total  int
	count  int
	phase  uint64
	failed bool
	broken bool

	action func(clean bool)
}

// NewBarrier builds a barrier for parties goroutines. action may be nil.
func NewBarrier(parties int, action func(clean bool)) (*Barrier, error) {
	if parties <= 0 {
		return nil, fmt.Errorf("barrier with %d parties: %w", parties, ErrConfiguration)
	}
	b := &Barrier{total: parties, action: action}
	b.cond = sync.NewCond(&b.mu)
	return b, nil
}

// Parties returns the number of parties per round.
func (b *Barrier) Parties() int { return b.total }

// Phase returns the number of completed rounds.
func (b *Barrier) Phase() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Wait registers the caller's arrival and blocks until the round trips.
// failed marks the caller's share of the round as unusable; the action then
// runs with clean == false. Wait returns ErrBarrierBroken if the barrier was
// broken before the caller's round was released.
func (b *Barrier) Wait(failed bool) error {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		return ErrBarrierBroken
	}
	phase := b.phase
	if failed {
		b.failed = true
	}
	b.count++

	if b.count == b.total {
		clean := !b.failed
		// Every other party of this round is parked in cond.Wait, so the
		// round cannot change while the action runs unlocked.
		b.mu.Unlock()
		if b.action != nil {
			b.action(clean)
		}
		b.mu.Lock()
		b.count = 0
		b.failed = false
		b.phase++
		b.cond.Broadcast()
		broken := b.broken
		b.mu.Unlock()
		if broken {
			return ErrBarrierBroken
		}
		return nil
	}

	for phase == b.phase && !b.broken {
		b.cond.Wait()
	}
	released := phase != b.phase
	b.mu.Unlock()
	if !released {
		return ErrBarrierBroken
	}
	return nil
}

// Break releases every parked party with ErrBarrierBroken and fails all
// later waits. It is safe to call more than once.
func (b *Barrier) Break() {
	b.mu.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.mu.Unlock()
}
