// Package geom holds the small amount of 3D math the simulation needs on top
// of mgl64: clamping, geographic conversion, rays and sphere intersection.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the fixed world up-axis.
var Up = mgl64.Vec3{0, 1, 0}

// Clamp limits v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LatLonToUnitSphere converts geographic degrees to a point on a sphere of the
// given radius. Latitude is elevation above the XZ plane, longitude is azimuth
// measured from +Z towards +X.
func LatLonToUnitSphere(latDeg, lonDeg, radius float64) mgl64.Vec3 {
	lat := mgl64.DegToRad(latDeg)
	lon := mgl64.DegToRad(lonDeg)
	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		radius * cosLat * math.Sin(lon),
		radius * math.Sin(lat),
		radius * cosLat * math.Cos(lon),
	}
}

// UnitSphereToLatLon is the inverse of LatLonToUnitSphere. The origin maps to
// (0, 0).
func UnitSphereToLatLon(p mgl64.Vec3) (latDeg, lonDeg float64) {
	r := p.Len()
	if r == 0 {
		return 0, 0
	}
	lat := math.Asin(Clamp(p.Y()/r, -1, 1))
	lon := math.Atan2(p.X(), p.Z())
	return mgl64.RadToDeg(lat), mgl64.RadToDeg(lon)
}

// Perpendicular returns normalize(v × up). When v is zero or parallel to up
// the X axis is returned so callers always get a unit vector.
func Perpendicular(v, up mgl64.Vec3) mgl64.Vec3 {
	c := v.Cross(up)
	l := c.Len()
	if l < 1e-12 || math.IsNaN(l) {
		return mgl64.Vec3{1, 0, 0}
	}
	return c.Mul(1 / l)
}

// Direction returns the unit vector from a to b, or zero when a == b.
func Direction(a, b mgl64.Vec3) mgl64.Vec3 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return d.Mul(1 / l)
}
