package random

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/statemachine/common"
)

// Sampler draws the random values states need.
type Sampler interface {
	// Range returns a value in [min, max).
	Range(min, max float64) float64
	// InsideUnitSphere returns a point inside the unit ball.
	InsideUnitSphere() common.Vec3
}

// Rand is a Sampler backed by a seeded PCG source, so runs can be replayed.
type Rand struct {
	r *rand.Rand
}

func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Rand) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

func (s *Rand) InsideUnitSphere() common.Vec3 {
	// uniform direction scaled by cbrt(u) for a uniform volume
	z := 2*s.r.Float64() - 1
	theta := 2 * math.Pi * s.r.Float64()
	ring := math.Sqrt(1 - z*z)
	radius := math.Cbrt(s.r.Float64())
	return common.Vec3{
		X: ring * math.Cos(theta) * radius,
		Y: z * radius,
		Z: ring * math.Sin(theta) * radius,
	}
}
