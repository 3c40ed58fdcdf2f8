package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"meteorfall/internal/geom"
)

// PlanetStyle describes the procedural globe.
type PlanetStyle struct {
	Ocean       colorful.Color
	Land        colorful.Color
	Ice         colorful.Color
	NightLights colorful.Color
	Cloud       colorful.Color
	Atmosphere  colorful.Color

	Light        mgl64.Vec3
	Ambient      float64
	CloudOpacity float64
	HaloWidth    float64
}

// DefaultPlanetStyle lights the globe from above like a single directional
// sun with a faint ambient term.
func DefaultPlanetStyle() PlanetStyle {
	return PlanetStyle{
		Ocean:        colorful.Color{R: 0.05, G: 0.17, B: 0.42},
		Land:         colorful.Color{R: 0.23, G: 0.42, B: 0.16},
		Ice:          colorful.Color{R: 0.9, G: 0.93, B: 0.96},
		NightLights:  colorful.Color{R: 1, G: 0.78, B: 0.4},
		Cloud:        colorful.Color{R: 1, G: 1, B: 1},
		Atmosphere:   colorful.Color{R: 0.3, G: 0.55, B: 1},
		Light:        mgl64.Vec3{0.35, 1, 0.45},
		Ambient:      0.2,
		CloudOpacity: 0.8,
		HaloWidth:    0.06,
	}
}

// fillPlanetRGBA shades the planet into buf, one pixel per step×step block of
// the camera viewport. Pixels off the globe are transparent except for the
// atmosphere halo.
func fillPlanetRGBA(buf []byte, cam *Camera, step int, style PlanetStyle, planet geom.Sphere) (w, h int) {
	if step < 1 {
		step = 1
	}
	vw, vh := cam.Size()
	w = (vw + step - 1) / step
	h = (vh + step - 1) / step
	if len(buf) < 4*w*h {
		return 0, 0
	}
	basis := cam.basis()
	light := style.Light.Normalize()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ray := basis.ray((float64(x)+0.5)*float64(step), (float64(y)+0.5)*float64(step))
			writeRGBA(buf[(y*w+x)*4:], shadePlanet(ray, light, style, planet))
		}
	}
	return w, h
}

func shadePlanet(ray geom.Ray, light mgl64.Vec3, style PlanetStyle, planet geom.Sphere) color.RGBA {
	hit, ok := planet.Intersect(ray)
	if !ok {
		return halo(ray, style, planet)
	}
	n := hit.Sub(planet.Center).Normalize()
	lat, lon := geom.UnitSphereToLatLon(n)
	latR, lonR := mgl64.DegToRad(lat), mgl64.DegToRad(lon)
	diffuse := math.Max(0, n.Dot(light))

	base := style.Ocean
	land := landMask(latR, lonR) > 0.35
	switch {
	case math.Abs(lat) > 70:
		base = style.Ice
	case land:
		base = style.Land
	}
	lit := scaleColor(base, style.Ambient+diffuse)
	if land && diffuse < 0.15 {
		lit = addColor(lit, scaleColor(style.NightLights, (0.15-diffuse)/0.15*0.6*cityMask(latR, lonR)))
	}
	if c := cloudMask(latR, lonR); c > 0 {
		lit = lit.BlendRgb(scaleColor(style.Cloud, style.Ambient+diffuse), c*style.CloudOpacity)
	}
	facing := math.Abs(n.Dot(ray.Direction.Normalize()))
	rim := math.Pow(1-facing, 3)
	lit = addColor(lit, scaleColor(style.Atmosphere, rim*0.8))
	return toRGBA(lit, 1)
}

func halo(ray geom.Ray, style PlanetStyle, planet geom.Sphere) color.RGBA {
	if style.HaloWidth <= 0 {
		return color.RGBA{}
	}
	dir := ray.Direction.Normalize()
	oc := planet.Center.Sub(ray.Origin)
	t := oc.Dot(dir)
	if t <= 0 {
		return color.RGBA{}
	}
	miss := oc.Sub(dir.Mul(t)).Len() - planet.Radius
	width := planet.Radius * style.HaloWidth
	if miss < 0 || miss > width {
		return color.RGBA{}
	}
	a := 1 - miss/width
	return toRGBA(style.Atmosphere, a*a*0.7)
}

// landMask is a smooth pseudo-continent field in roughly [-1.75, 1.75].
func landMask(lat, lon float64) float64 {
	return math.Sin(3*lon)*math.Cos(2*lat) +
		0.5*math.Sin(5*lon+1.3)*math.Sin(4*lat+0.7) +
		0.25*math.Sin(11*lon+2)*math.Cos(9*lat)
}

func cityMask(lat, lon float64) float64 {
	v := math.Sin(23*lon+0.4) * math.Sin(19*lat+1.1)
	if v < 0.2 {
		return 0
	}
	return v
}

// cloudMask returns cloud cover in [0, 1].
func cloudMask(lat, lon float64) float64 {
	v := math.Sin(7*lon+3*lat)*math.Cos(5*lat-2*lon) + 0.4*math.Sin(13*lon-9*lat)
	return geom.Clamp((v-0.55)/0.6, 0, 1)
}

func scaleColor(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func addColor(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

// toRGBA converts c to premultiplied 8-bit RGBA with the given opacity.
func toRGBA(c colorful.Color, alpha float64) color.RGBA {
	alpha = geom.Clamp(alpha, 0, 1)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(math.Round(float64(r) * alpha)),
		G: uint8(math.Round(float64(g) * alpha)),
		B: uint8(math.Round(float64(b) * alpha)),
		A: uint8(math.Round(255 * alpha)),
	}
}

func writeRGBA(dst []byte, c color.RGBA) {
	dst[0] = c.R
	dst[1] = c.G
	dst[2] = c.B
	dst[3] = c.A
}
