//go:build ebiten

package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"meteorfall/internal/geom"
	"meteorfall/internal/scene"
)

// Painter draws the starfield, the shaded planet and the scene graph.
type Painter struct {
	cam    *Camera
	style  PlanetStyle
	planet geom.Sphere
	step   int
	stars  []Star

	planetImg *ebiten.Image
	buf       []byte
	lastEye   mgl64.Vec3
	lastW     int
	lastH     int

	pixel       *ebiten.Image
	sprites     []Sprite
	starSprites []Sprite
}

// NewPainter builds a painter shading the planet at 1/step resolution.
func NewPainter(cam *Camera, stars []Star, step int) *Painter {
	if step < 1 {
		step = 1
	}
	p := &Painter{
		cam:    cam,
		style:  DefaultPlanetStyle(),
		planet: geom.UnitSphere,
		step:   step,
		stars:  stars,
		pixel:  ebiten.NewImage(1, 1),
	}
	p.pixel.Fill(color.White)
	return p
}

// Draw paints one frame.
func (p *Painter) Draw(dst *ebiten.Image, g *scene.Graph) {
	dst.Fill(color.Black)

	p.starSprites = StarSprites(p.cam, p.stars, p.starSprites)
	for _, s := range p.starSprites {
		p.drawPoint(dst, s)
	}

	p.refreshPlanet()
	if p.planetImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(p.step), float64(p.step))
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(p.planetImg, op)
	}

	p.sprites = Layout(p.cam, g.Visuals(), p.planet, p.sprites)
	for _, s := range p.sprites {
		switch {
		case s.Kind == scene.KindExplosion:
			p.drawPoint(dst, s)
		case s.Ring:
			width := float32(math.Max(1, s.Radius*0.08))
			vector.StrokeCircle(dst, float32(s.X), float32(s.Y), float32(s.Radius), width, s.Color, true)
		case s.Kind == scene.KindDeflector:
			p.drawCone(dst, s)
		default:
			vector.DrawFilledCircle(dst, float32(s.X), float32(s.Y), float32(s.Radius), s.Color, true)
		}
	}
}

// refreshPlanet reshades only when the view changed.
func (p *Painter) refreshPlanet() {
	w, h := p.cam.Size()
	eye := p.cam.Eye()
	if p.planetImg != nil && w == p.lastW && h == p.lastH && eye.ApproxEqualThreshold(p.lastEye, 1e-6) {
		return
	}
	iw := (w + p.step - 1) / p.step
	ih := (h + p.step - 1) / p.step
	if p.planetImg == nil || p.planetImg.Bounds().Dx() != iw || p.planetImg.Bounds().Dy() != ih {
		p.planetImg = ebiten.NewImage(iw, ih)
		p.buf = make([]byte, 4*iw*ih)
	}
	fillPlanetRGBA(p.buf, p.cam, p.step, p.style, p.planet)
	p.planetImg.WritePixels(p.buf)
	p.lastEye, p.lastW, p.lastH = eye, w, h
}

func (p *Painter) drawPoint(dst *ebiten.Image, s Sprite) {
	size := s.Radius * 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(s.X-s.Radius, s.Y-s.Radius)
	op.ColorScale.ScaleWithColor(s.Color)
	if s.Additive {
		op.Blend = ebiten.BlendLighter
	}
	dst.DrawImage(p.pixel, op)
}

func (p *Painter) drawCone(dst *ebiten.Image, s Sprite) {
	dx, dy := s.TipX-s.X, s.TipY-s.Y
	l := math.Hypot(dx, dy)
	if l < 1e-3 {
		vector.DrawFilledCircle(dst, float32(s.X), float32(s.Y), float32(s.Radius), s.Color, true)
		return
	}
	ux, uy := dx/l, dy/l
	tipX, tipY := s.X+ux*s.Radius, s.Y+uy*s.Radius
	baseX, baseY := s.X-ux*s.Radius, s.Y-uy*s.Radius
	half := s.Radius * 0.5
	lx, ly := baseX-uy*half, baseY+ux*half
	rx, ry := baseX+uy*half, baseY-ux*half
	vector.StrokeLine(dst, float32(tipX), float32(tipY), float32(lx), float32(ly), 1.5, s.Color, true)
	vector.StrokeLine(dst, float32(tipX), float32(tipY), float32(rx), float32(ry), 1.5, s.Color, true)
	vector.StrokeLine(dst, float32(lx), float32(ly), float32(rx), float32(ry), 1.5, s.Color, true)
}
