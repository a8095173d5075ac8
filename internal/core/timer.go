package core

import (
	"fmt"
	"time"
)

// Rate limits for the generation speed, in generations per second.
const (
	MinRate     = 1
	MaxRate     = 30
	DefaultRate = 5
)

// Rate is a target generation rate in generations per second.
type Rate int

// Valid reports whether r lies in [MinRate, MaxRate].
func (r Rate) Valid() bool { return r >= MinRate && r <= MaxRate }

// Interval returns the pause applied between two generations.
func (r Rate) Interval() time.Duration {
	if r <= 0 {
		r = DefaultRate
	}
	return time.Second / time.Duration(r)
}

// Clamp constrains r to the valid range.
func (r Rate) Clamp() Rate {
	if r < MinRate {
		return MinRate
	}
	if r > MaxRate {
		return MaxRate
	}
	return r
}

func (r Rate) String() string { return fmt.Sprintf("%d gen/s", int(r)) }
