// Package render turns the scene graph into screen-space sprites and shades
// the procedural globe. The ebiten painter lives behind the ebiten build tag;
// everything else is plain math and pixel buffers.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"meteorfall/internal/geom"
)

// Camera is an orbit camera around Target with damped rotation.
type Camera struct {
	Target  mgl64.Vec3
	FovY    float64 // degrees
	Near    float64
	Far     float64
	Damping float64

	MinDistance float64
	MaxDistance float64
	RotateSpeed float64
	ZoomSpeed   float64

	yaw      float64
	pitch    float64
	distance float64
	dYaw     float64
	dPitch   float64

	width  int
	height int
}

const maxPitch = math.Pi/2 - 0.01

// NewCamera returns a camera on the +Z axis six units from the origin.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		FovY:        45,
		Near:        0.1,
		Far:         1000,
		Damping:     0.05,
		MinDistance: 1.5,
		MaxDistance: 40,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		distance:    6,
	}
	c.Resize(width, height)
	return c
}

// Resize updates the viewport size.
func (c *Camera) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = width, height
}

// Size returns the viewport size in pixels.
func (c *Camera) Size() (int, int) { return c.width, c.height }

// Aspect returns width over height.
func (c *Camera) Aspect() float64 { return float64(c.width) / float64(c.height) }

// Distance returns the current distance to Target.
func (c *Camera) Distance() float64 { return c.distance }

// Orbit queues a rotation from a pointer drag of dx, dy pixels. A drag across
// the full viewport height turns the camera once around.
func (c *Camera) Orbit(dx, dy float64) {
	k := 2 * math.Pi * c.RotateSpeed / float64(c.height)
	c.dYaw -= dx * k
	c.dPitch += dy * k
}

// Zoom scales the distance by one wheel notch per unit of delta. Positive
// delta moves closer.
func (c *Camera) Zoom(delta float64) {
	if delta == 0 {
		return
	}
	c.distance *= math.Pow(0.95, delta*c.ZoomSpeed)
	c.distance = geom.Clamp(c.distance, c.MinDistance, c.MaxDistance)
}

// Update applies a damped fraction of the queued rotation. It reports whether
// the camera moved noticeably.
func (c *Camera) Update() bool {
	damping := c.Damping
	if damping <= 0 || damping > 1 {
		damping = 1
	}
	stepYaw := c.dYaw * damping
	stepPitch := c.dPitch * damping
	c.yaw += stepYaw
	c.pitch = geom.Clamp(c.pitch+stepPitch, -maxPitch, maxPitch)
	c.dYaw *= 1 - damping
	c.dPitch *= 1 - damping
	return math.Abs(stepYaw)+math.Abs(stepPitch) > 1e-6
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.pitch)
	return c.Target.Add(mgl64.Vec3{
		c.distance * cp * math.Sin(c.yaw),
		c.distance * math.Sin(c.pitch),
		c.distance * cp * math.Cos(c.yaw),
	})
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, geom.Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}

// Project maps a world point to screen pixels with the origin at the top left.
// depth is the distance along the view axis; ok is false behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	view := c.View()
	depth = -view.Mul4x1(p.Vec4(1)).Z()
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	win := mgl64.Project(p, view, c.Projection(), 0, 0, c.width, c.height)
	return win.X(), float64(c.height) - win.Y(), depth, true
}

// PixelRadius returns the on-screen radius of a sphere of radius r at depth.
func (c *Camera) PixelRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * c.focal() / depth
}

func (c *Camera) focal() float64 {
	return float64(c.height) / 2 / math.Tan(mgl64.DegToRad(c.FovY)/2)
}

// PickRay returns the world ray through screen pixel (x, y).
func (c *Camera) PickRay(x, y float64) geom.Ray {
	view, proj := c.View(), c.Projection()
	wy := float64(c.height) - y
	near, errNear := mgl64.UnProject(mgl64.Vec3{x, wy, 0}, view, proj, 0, 0, c.width, c.height)
	far, errFar := mgl64.UnProject(mgl64.Vec3{x, wy, 1}, view, proj, 0, 0, c.width, c.height)
	if errNear != nil || errFar != nil {
		return c.basis().ray(x, y)
	}
	return geom.Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// rayBasis generates primary rays without a matrix inverse per pixel.
type rayBasis struct {
	eye                   mgl64.Vec3
	forward, right, up    mgl64.Vec3
	halfW, halfH          float64
	tanHalfY, tanHalfAspX float64
}

func (c *Camera) basis() rayBasis {
	eye := c.Eye()
	forward := c.Target.Sub(eye).Normalize()
	right := forward.Cross(geom.Up).Normalize()
	up := right.Cross(forward)
	t := math.Tan(mgl64.DegToRad(c.FovY) / 2)
	return rayBasis{
		eye:         eye,
		forward:     forward,
		right:       right,
		up:          up,
		halfW:       float64(c.width) / 2,
		halfH:       float64(c.height) / 2,
		tanHalfY:    t,
		tanHalfAspX: t * c.Aspect(),
	}
}

func (b rayBasis) ray(x, y float64) geom.Ray {
	nx := (x - b.halfW) / b.halfW
	ny := (b.halfH - y) / b.halfH
	dir := b.forward.
		Add(b.right.Mul(nx * b.tanHalfAspX)).
		Add(b.up.Mul(ny * b.tanHalfY))
	return geom.Ray{Origin: b.eye, Direction: dir.Normalize()}
}
