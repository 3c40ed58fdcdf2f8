package impact

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"meteorfall/internal/geom"
	"meteorfall/internal/scene"
)

const targetMarkerRadius = 0.02

var targetMarkerColor = colorful.Color{R: 0, G: 1, B: 0}

// TargetSelector owns the active impact target and its marker.
type TargetSelector struct {
	scene   scene.Scene
	surface geom.Sphere
	target  mgl64.Vec3
	marker  *scene.Visual
}

// NewTargetSelector starts with the target at (lat, lon) on the surface. No
// marker is shown until the target is replaced.
func NewTargetSelector(sc scene.Scene, surface geom.Sphere, lat, lon float64) *TargetSelector {
	return &TargetSelector{
		scene:   sc,
		surface: surface,
		target:  surface.Center.Add(geom.LatLonToUnitSphere(lat, lon, surface.Radius)),
	}
}

// Target returns the active target.
func (t *TargetSelector) Target() mgl64.Vec3 { return t.target }

// Marker returns the current target marker, if any.
func (t *TargetSelector) Marker() *scene.Visual { return t.marker }

// PickSurface replaces the target with the nearest intersection of ray and
// the planet surface. A miss leaves the target and marker untouched.
func (t *TargetSelector) PickSurface(ray geom.Ray) (mgl64.Vec3, bool) {
	hit, ok := t.surface.Intersect(ray)
	if !ok {
		return mgl64.Vec3{}, false
	}
	t.SetTarget(hit)
	return hit, true
}

// SetTarget replaces the target and moves the marker to it.
func (t *TargetSelector) SetTarget(p mgl64.Vec3) {
	t.target = p
	if t.marker != nil {
		t.scene.Remove(t.marker)
	}
	t.marker = &scene.Visual{
		Kind:     scene.KindTargetMarker,
		Position: p,
		Radius:   targetMarkerRadius,
		Color:    targetMarkerColor,
		Opacity:  1,
		Scale:    1,
	}
	t.scene.Add(t.marker)
}

// Reset restores the target to (lat, lon) and drops the marker.
func (t *TargetSelector) Reset(lat, lon float64) {
	if t.marker != nil {
		t.scene.Remove(t.marker)
		t.marker = nil
	}
	t.target = t.surface.Center.Add(geom.LatLonToUnitSphere(lat, lon, t.surface.Radius))
}
