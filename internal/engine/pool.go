package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"lifecell/internal/core"
	"lifecell/pkg/sims/life"
)

// RuleFunc computes a cell's next state from its state and live neighbour count.
type RuleFunc func(alive bool, neighbors int) bool

// span is a half-open range of interior cells in row-major order.
type span struct{ start, end int }

// PoolConfig tunes a worker pool. Zero values select defaults.
type PoolConfig struct {
	Rule   RuleFunc
	Logger *slog.Logger
}

// Pool runs the per-cell rule for every interior cell in lockstep rounds.
// Each goroutine owns a contiguous block of cells, writes only those cells of
// the next buffer, and meets the others on the barrier once per round.
type Pool struct {
	grid    *core.Grid
	signals *Signals
	barrier *Barrier
	rule    RuleFunc
	log     *slog.Logger

	parts   []span
	eg      errgroup.Group
	started atomic.Bool
	done    chan struct{}
}

// partition splits n*n interior cells into workers contiguous spans, handing
// the remainder to the first spans.
func partition(n, workers int) []span {
	total := n * n
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	parts := make([]span, workers)
	base, extra := total/workers, total%workers
	start := 0
	for w := range parts {
		size := base
		if w < extra {
			size++
		}
		parts[w] = span{start: start, end: start + size}
		start += size
	}
	return parts
}

// NewPool lays out one worker per barrier party without starting any
// goroutine.
func NewPool(grid *core.Grid, signals *Signals, barrier *Barrier, cfg PoolConfig) (*Pool, error) {
	return newPool(grid, signals, barrier, partition(grid.Size(), barrier.Parties()), cfg)
}

func newPool(grid *core.Grid, signals *Signals, barrier *Barrier, parts []span, cfg PoolConfig) (*Pool, error) {
	total := grid.Size() * grid.Size()
	if len(parts) != barrier.Parties() {
		return nil, fmt.Errorf("%d workers for a %d-party barrier: %w", len(parts), barrier.Parties(), ErrConfiguration)
	}
	for w, sp := range parts {
		if sp.start < 0 || sp.end > total || sp.start >= sp.end {
			return nil, fmt.Errorf("worker %d cells [%d,%d) outside %d interior cells: %w", w, sp.start, sp.end, total, ErrConfiguration)
		}
	}
	rule := cfg.Rule
	if rule == nil {
		rule = life.Rule
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		grid:    grid,
		signals: signals,
		barrier: barrier,
		rule:    rule,
		log:     logger,
		parts:   parts,
		done:    make(chan struct{}),
	}, nil
}

// Workers returns the number of goroutines the pool runs.
func (p *Pool) Workers() int { return len(p.parts) }

// Start launches the workers. A pool can be started once.
func (p *Pool) Start() error {
	if !p.started.CompareAndSwap(false, true) {
		return errors.New("worker pool already started")
	}
	first := p.signals.Completed()
	for w, sp := range p.parts {
		p.eg.Go(func() error {
			p.work(w, sp, first)
			return nil
		})
	}
	go func() {
		_ = p.eg.Wait()
		close(p.done)
	}()
	p.log.Debug("worker pool started", "workers", len(p.parts), "cells", p.grid.Size()*p.grid.Size())
	return nil
}

// Wait blocks until every worker has exited or ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	if !p.started.Load() {
		return nil
	}
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for worker pool: %w", ctx.Err())
	}
}

func (p *Pool) work(w int, sp span, round uint64) {
	for ; ; round++ {
		if !p.signals.AwaitRun(round) {
			return
		}
		failed := p.compute(w, sp)
		if err := p.barrier.Wait(failed); err != nil {
			return
		}
	}
}

// compute applies the rule to the worker's cells. A panic is contained to
// this worker's round and reported as a failed arrival.
func (p *Pool) compute(w int, sp span) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker fault", "worker", w, "panic", r)
			failed = true
		}
	}()
	n := p.grid.Size()
	for c := sp.start; c < sp.end; c++ {
		i, j := c/n+1, c%n+1
		p.grid.SetNext(i, j, p.rule(p.grid.Alive(i, j), p.grid.NeighborCount(i, j)))
	}
	return false
}
