package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLatLonStaysOnSphere(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 3.25} {
		for lat := -90.0; lat <= 90; lat += 7.5 {
			for lon := -180.0; lon <= 180; lon += 11.25 {
				p := LatLonToUnitSphere(lat, lon, radius)
				if d := math.Abs(p.Len() - radius); d > 1e-9 {
					t.Fatalf("lat=%v lon=%v radius=%v: |p|=%v", lat, lon, radius, p.Len())
				}
			}
		}
	}
}

func TestLatLonAxes(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     mgl64.Vec3
	}{
		{0, 0, mgl64.Vec3{0, 0, 1}},
		{0, 90, mgl64.Vec3{1, 0, 0}},
		{90, 0, mgl64.Vec3{0, 1, 0}},
		{-90, 45, mgl64.Vec3{0, -1, 0}},
	}
	for _, tc := range cases {
		got := LatLonToUnitSphere(tc.lat, tc.lon, 1)
		// Exact zeros make ApproxEqualThreshold square its epsilon, so compare
		// by distance.
		if got.Sub(tc.want).Len() > 1e-9 {
			t.Errorf("LatLonToUnitSphere(%v, %v) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}

func TestLatLonRoundTrip(t *testing.T) {
	for _, c := range [][2]float64{{26, 30}, {-45, -120}, {10, 179}, {0, 0}} {
		lat, lon := UnitSphereToLatLon(LatLonToUnitSphere(c[0], c[1], 1))
		if math.Abs(lat-c[0]) > 1e-9 || math.Abs(lon-c[1]) > 1e-9 {
			t.Errorf("round trip %v -> (%v, %v)", c, lat, lon)
		}
	}
}

func TestClamp(t *testing.T) {
	lo, hi := 11000.0, 72000.0
	for _, v := range []float64{-1e9, 0, 10999, 11000, 20000, 72000, 72001, 1e12, math.Inf(1), math.Inf(-1), math.NaN()} {
		got := Clamp(v, lo, hi)
		if got < lo || got > hi {
			t.Fatalf("Clamp(%v) = %v outside [%v, %v]", v, got, lo, hi)
		}
		if v >= lo && v <= hi && got != v {
			t.Fatalf("Clamp(%v) = %v, want identity", v, got)
		}
	}
	if got := Clamp(math.NaN(), 1, 2); got != 1 {
		t.Fatalf("Clamp(NaN) = %v, want lower bound", got)
	}
}

func TestPerpendicular(t *testing.T) {
	v := mgl64.Vec3{-1, -1, -1}
	p := Perpendicular(v, Up)
	if math.Abs(p.Len()-1) > 1e-12 {
		t.Fatalf("perpendicular not unit: %v", p.Len())
	}
	if math.Abs(p.Dot(v)) > 1e-12 || math.Abs(p.Dot(Up)) > 1e-12 {
		t.Fatalf("perpendicular %v not orthogonal to inputs", p)
	}

	if got := Perpendicular(mgl64.Vec3{0, 3, 0}, Up); got != (mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("parallel fallback = %v", got)
	}
	if got := Perpendicular(mgl64.Vec3{}, Up); got != (mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("zero fallback = %v", got)
	}
}

func TestSphereIntersect(t *testing.T) {
	hit, ok := UnitSphere.Intersect(Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -2}})
	if !ok {
		t.Fatal("expected hit")
	}
	if !hit.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Fatalf("nearest hit = %v", hit)
	}

	if _, ok := UnitSphere.Intersect(Ray{Origin: mgl64.Vec3{0, 2, 5}, Direction: mgl64.Vec3{0, 0, -1}}); ok {
		t.Fatal("ray passing above the sphere should miss")
	}
	if _, ok := UnitSphere.Intersect(Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, 1}}); ok {
		t.Fatal("ray pointing away should miss")
	}
	if _, ok := UnitSphere.Intersect(Ray{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{0, 0, 1}}); ok {
		t.Fatal("ray from inside should miss")
	}
}

func TestSphereOccludes(t *testing.T) {
	eye := mgl64.Vec3{0, 0, 6}
	if !UnitSphere.Occludes(eye, mgl64.Vec3{0, 0, -1.5}) {
		t.Fatal("point behind planet should be occluded")
	}
	if UnitSphere.Occludes(eye, mgl64.Vec3{0, 0, 1}) {
		t.Fatal("front surface point should be visible")
	}
	if UnitSphere.Occludes(eye, mgl64.Vec3{3, 0, -3}) {
		t.Fatal("point off to the side should be visible")
	}
}
