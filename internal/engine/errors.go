package engine

import "errors"

var (
	// ErrConfiguration marks invalid sizes, worker layouts, or settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidSpeed is returned by SetSpeed outside the 1-30 gen/s range.
	ErrInvalidSpeed = errors.New("speed out of range")
	// ErrBusy is returned for edits attempted while generations are advancing.
	ErrBusy = errors.New("simulation is advancing")
	// ErrEmptyGrid is returned when starting or stepping a grid with no live cells.
	ErrEmptyGrid = errors.New("grid has no living cells")
	// ErrStopped is returned once the controller has been shut down.
	ErrStopped = errors.New("simulation stopped")
	// ErrGenerationFailed reports a round discarded because a worker faulted.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrBarrierBroken is returned to parties released by Barrier.Break.
	ErrBarrierBroken = errors.New("barrier broken")
)
