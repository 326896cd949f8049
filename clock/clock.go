package clock

import "github.com/hajimehoshi/ebiten/v2"

const defaultTPS = 60

// Clock is a monotonic time source sampled by timer-bearing states.
type Clock interface {
	// Now is the number of seconds since the clock started.
	Now() float64
	// Delta is the length of the last tick in seconds.
	Delta() float64
}

// Fixed is advanced explicitly by the scheduler, once per tick.
type Fixed struct {
	now   float64
	delta float64
}

func NewFixed() *Fixed {
	return &Fixed{}
}

// Advance moves the clock forward by dt seconds. Negative steps are ignored
// so the clock stays monotonic.
func (c *Fixed) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.now += dt
}

func (c *Fixed) Now() float64 {
	return c.now
}

func (c *Fixed) Delta() float64 {
	return c.delta
}

// TPSDelta is the tick length implied by ebiten's configured ticks per
// second.
func TPSDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	return 1 / float64(tps)
}
