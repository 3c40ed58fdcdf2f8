package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line. Direction does not need to be normalized.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns Origin + t*Direction.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Sphere is the planet surface used for picking and predicted impacts.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// UnitSphere is the planet in scene units.
var UnitSphere = Sphere{Radius: 1}

// Intersect returns the nearest front-facing hit of r with the sphere. Rays
// starting inside the sphere only see back faces and report no hit.
func (s Sphere) Intersect(r Ray) (mgl64.Vec3, bool) {
	dir := r.Direction
	a := dir.Dot(dir)
	if a == 0 {
		return mgl64.Vec3{}, false
	}
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c < 0 {
		return mgl64.Vec3{}, false
	}
	disc := b*b - a*c
	if disc < 0 {
		return mgl64.Vec3{}, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// Occludes reports whether the sphere blocks the segment from eye to p.
func (s Sphere) Occludes(eye, p mgl64.Vec3) bool {
	hit, ok := s.Intersect(Ray{Origin: eye, Direction: p.Sub(eye)})
	if !ok {
		return false
	}
	return hit.Sub(eye).Len() < p.Sub(eye).Len()-1e-9
}
