package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"meteorfall/pkg/core"
)

// Star is a fixed backdrop point.
type Star struct {
	Position mgl64.Vec3
	Color    colorful.Color
}

// NewStarfield scatters n stars over a shell between 25 and 50 units from the
// origin, tinted pale blue with random lightness.
func NewStarfield(n int, seed int64) []Star {
	if n < 0 {
		n = 0
	}
	rng := core.NewRNG(seed)
	stars := make([]Star, n)
	for i := range stars {
		theta, phi := rng.UnitSphere()
		r := rng.Range(25, 25)
		dir := mgl64.SphericalToCartesian(1, phi, theta)
		stars[i] = Star{
			Position: dir.Mul(r),
			Color:    colorful.Hsl(216, 0.2, rng.Float64()),
		}
	}
	return stars
}
