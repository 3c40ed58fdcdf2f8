package render

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"meteorfall/internal/geom"
	"meteorfall/internal/scene"
)

// Sprite is a visual projected to screen space.
type Sprite struct {
	Kind     scene.Kind
	X, Y     float64
	Radius   float64
	Depth    float64
	Color    color.RGBA
	Additive bool
	// Ring sprites are drawn as an outline.
	Ring bool
	// TipX, TipY is where oriented sprites point.
	TipX, TipY float64
}

// minSpriteRadius keeps distant markers visible.
const minSpriteRadius = 1.5

// Layout projects visuals through cam, drops anything hidden behind the
// planet and returns the sprites ordered far to near. dst is reused.
func Layout(cam *Camera, visuals []*scene.Visual, planet geom.Sphere, dst []Sprite) []Sprite {
	dst = dst[:0]
	eye := cam.Eye()
	for _, v := range visuals {
		if v == nil || v.Opacity <= 0 {
			continue
		}
		if len(v.Points) > 0 {
			dst = layoutPoints(cam, eye, v, planet, dst)
			continue
		}
		if planet.Occludes(eye, v.Position) {
			continue
		}
		x, y, depth, ok := cam.Project(v.Position)
		if !ok {
			continue
		}
		scale := v.Scale
		if scale <= 0 {
			scale = 1
		}
		s := Sprite{
			Kind:     v.Kind,
			X:        x,
			Y:        y,
			Depth:    depth,
			Radius:   max(cam.PixelRadius(v.Radius*scale, depth), minSpriteRadius),
			Color:    toRGBA(v.Color, v.Opacity),
			Additive: v.Additive,
			Ring:     v.Kind == scene.KindShockwave,
			TipX:     x,
			TipY:     y,
		}
		if v.Kind == scene.KindDeflector {
			if tx, ty, _, ok := cam.Project(v.Facing); ok {
				s.TipX, s.TipY = tx, ty
			}
			if h := cam.PixelRadius(v.Height, depth); h > s.Radius {
				s.Radius = h / 2
			}
		}
		dst = append(dst, s)
	}
	sort.SliceStable(dst, func(i, j int) bool { return dst[i].Depth > dst[j].Depth })
	return dst
}

func layoutPoints(cam *Camera, eye mgl64.Vec3, v *scene.Visual, planet geom.Sphere, dst []Sprite) []Sprite {
	c := toRGBA(v.Color, v.Opacity)
	for _, p := range v.Points {
		if planet.Occludes(eye, p) {
			continue
		}
		x, y, depth, ok := cam.Project(p)
		if !ok {
			continue
		}
		dst = append(dst, Sprite{
			Kind:     v.Kind,
			X:        x,
			Y:        y,
			Depth:    depth,
			Radius:   max(cam.PixelRadius(v.Radius, depth), 1),
			Color:    c,
			Additive: v.Additive,
		})
	}
	return dst
}

// StarSprites projects the backdrop. Stars ignore occlusion; the planet is
// painted over them.
func StarSprites(cam *Camera, stars []Star, dst []Sprite) []Sprite {
	dst = dst[:0]
	for _, s := range stars {
		x, y, depth, ok := cam.Project(s.Position)
		if !ok {
			continue
		}
		w, h := cam.Size()
		if x < 0 || y < 0 || x >= float64(w) || y >= float64(h) {
			continue
		}
		dst = append(dst, Sprite{X: x, Y: y, Depth: depth, Radius: 1, Color: toRGBA(s.Color, 1)})
	}
	return dst
}
