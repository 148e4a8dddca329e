// Package tick provides the fixed-timestep accumulator shared by the server
// simulation and client prediction.
package tick

import "time"

// Accumulator converts variable wall-clock elapsed time into a whole number
// of fixed steps. Leftover time carries into the next Advance.
type Accumulator struct {
	step     time.Duration
	maxSteps int
	pending  time.Duration
	now      time.Duration
}

// NewAccumulator returns an accumulator producing steps of the given size.
// maxSteps bounds catch-up after a stall; excess time is discarded.
func NewAccumulator(step time.Duration, maxSteps int) *Accumulator {
	if step <= 0 {
		step = time.Second / 60
	}
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Accumulator{step: step, maxSteps: maxSteps}
}

// Advance adds elapsed time and returns how many fixed steps are due.
func (a *Accumulator) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		a.pending += elapsed
	}
	n := int(a.pending / a.step)
	if n > a.maxSteps {
		n = a.maxSteps
		a.pending = 0
	} else {
		a.pending -= time.Duration(n) * a.step
	}
	return n
}

// Consume marks one step as simulated and returns the simulation time at the
// start of that step.
func (a *Accumulator) Consume() time.Duration {
	t := a.now
	a.now += a.step
	return t
}

// Step returns the fixed step size.
func (a *Accumulator) Step() time.Duration { return a.step }

// Seconds returns the fixed step size in seconds.
func (a *Accumulator) Seconds() float64 { return a.step.Seconds() }

// Now returns the simulation clock: steps consumed times the step size.
func (a *Accumulator) Now() time.Duration { return a.now }

// Alpha returns the fraction of a step left over, for render interpolation.
func (a *Accumulator) Alpha() float64 {
	return float64(a.pending) / float64(a.step)
}
