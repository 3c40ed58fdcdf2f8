package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns a uniform value in [lo, lo+span).
func (r *RNG) Range(lo, span float64) float64 {
	return lo + r.r.Float64()*span
}

// Angle returns a uniform angle in [0, 2π).
func (r *RNG) Angle() float64 {
	return r.r.Float64() * 2 * math.Pi
}

// UnitSphere returns spherical angles (theta, phi) distributed uniformly over
// the surface of a sphere: theta ~ U(0, 2π), phi = acos(2u-1).
func (r *RNG) UnitSphere() (theta, phi float64) {
	theta = r.Angle()
	phi = math.Acos(2*r.r.Float64() - 1)
	return theta, phi
}
