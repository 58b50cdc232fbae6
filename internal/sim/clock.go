package sim

// Clock tracks simulation time and the iteration counter. It is owned by the
// model and advanced exactly once per step by the stepper; no other mutation
// path exists.
type Clock struct {
	time      float64
	iteration int
}

func NewClock() *Clock {
	return &Clock{}
}

// Time returns the current simulation time.
func (c *Clock) Time() float64 { return c.time }

// Iteration returns the number of completed steps.
func (c *Clock) Iteration() int { return c.iteration }

// Advance moves the clock forward by dt and increments the iteration
// counter.
func (c *Clock) Advance(dt float64) {
	c.time += dt
	c.iteration++
}
