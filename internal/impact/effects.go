package impact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"meteorfall/internal/scene"
	"meteorfall/pkg/core"
)

// EffectKind tags the variant of an Effect.
type EffectKind uint8

const (
	// EffectExplosion is a fading particle shell.
	EffectExplosion EffectKind = iota
	// EffectShockwave is an expanding, fading ring.
	EffectShockwave
)

func (k EffectKind) String() string {
	if k == EffectShockwave {
		return "shockwave"
	}
	return "explosion"
}

// Effect is a time-bounded visual. It owns its visual until it expires.
type Effect struct {
	Kind      EffectKind
	Remaining int
	Total     int

	visual      *scene.Visual
	scaleStep   float64
	baseOpacity float64
	alive       bool
}

// NewExplosion builds a point cloud distributed uniformly over a thin shell
// around pos.
func NewExplosion(pos mgl64.Vec3, cfg ExplosionConfig, rng *core.RNG) *Effect {
	points := make([]mgl64.Vec3, cfg.Particles)
	for i := range points {
		theta, phi := rng.UnitSphere()
		r := rng.Range(cfg.RadiusMin, cfg.RadiusRange)
		sinPhi := math.Sin(phi)
		points[i] = mgl64.Vec3{
			pos.X() + r*sinPhi*math.Cos(theta),
			pos.Y() + r*sinPhi*math.Sin(theta),
			pos.Z() + r*math.Cos(phi),
		}
	}
	color := colorful.Color{R: cfg.Color[0], G: cfg.Color[1], B: cfg.Color[2]}
	return &Effect{
		Kind:      EffectExplosion,
		Remaining: cfg.Life,
		Total:     cfg.Life,
		visual: &scene.Visual{
			Kind:     scene.KindExplosion,
			Position: pos,
			Radius:   cfg.PointSize,
			Color:    color,
			Emissive: color,
			Opacity:  1,
			Scale:    1,
			Additive: true,
			Points:   points,
		},
		baseOpacity: 1,
		alive:       true,
	}
}

// NewShockwave builds a single expanding, fading shell at pos.
func NewShockwave(pos mgl64.Vec3, cfg ShockwaveConfig) *Effect {
	return &Effect{
		Kind:      EffectShockwave,
		Remaining: cfg.Life,
		Total:     cfg.Life,
		visual: &scene.Visual{
			Kind:     scene.KindShockwave,
			Position: pos,
			Radius:   cfg.Radius,
			Color:    colorful.Color{R: 1, G: 0.6, B: 0.2},
			Opacity:  cfg.Opacity,
			Scale:    1,
			Additive: true,
		},
		scaleStep:   cfg.ScaleStep,
		baseOpacity: cfg.Opacity,
		alive:       true,
	}
}

// Alive reports whether the effect still owns a visual.
func (e *Effect) Alive() bool { return e.alive }

// Visual returns the effect's scene entity.
func (e *Effect) Visual() *scene.Visual { return e.visual }

// Update advances the effect by one tick and releases its visual from sc on
// the tick its life runs out. Dead effects ignore further updates.
func (e *Effect) Update(sc scene.Scene) {
	if !e.alive {
		return
	}
	switch e.Kind {
	case EffectExplosion:
		e.visual.Opacity = e.fraction()
		e.Remaining--
	case EffectShockwave:
		e.Remaining--
		e.visual.Scale += e.scaleStep
		e.visual.Opacity = e.baseOpacity * e.fraction()
	}
	if e.Remaining <= 0 {
		e.Remaining = 0
		e.alive = false
		sc.Remove(e.visual)
	}
}

func (e *Effect) fraction() float64 {
	if e.Total <= 0 {
		return 0
	}
	return float64(e.Remaining) / float64(e.Total)
}

// Pool tracks live effects of one kind.
type Pool struct {
	scene   scene.Scene
	effects []*Effect
}

// NewPool returns an empty pool releasing visuals into sc.
func NewPool(sc scene.Scene) *Pool {
	return &Pool{scene: sc}
}

// Add installs e and shows its visual. Effects with no life expire
// immediately.
func (p *Pool) Add(e *Effect) {
	if e.Total <= 0 {
		e.alive = false
		return
	}
	p.scene.Add(e.visual)
	p.effects = append(p.effects, e)
}

// Update advances every effect and prunes the ones that expired.
func (p *Pool) Update() {
	for _, e := range p.effects {
		e.Update(p.scene)
	}
	live := p.effects[:0]
	for _, e := range p.effects {
		if e.alive {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(p.effects); i++ {
		p.effects[i] = nil
	}
	p.effects = live
}

// Len returns the number of live effects.
func (p *Pool) Len() int { return len(p.effects) }

// Effects exposes the live effects.
func (p *Pool) Effects() []*Effect { return p.effects }

// Clear releases every live effect.
func (p *Pool) Clear() {
	for i, e := range p.effects {
		if e.alive {
			e.alive = false
			p.scene.Remove(e.visual)
		}
		p.effects[i] = nil
	}
	p.effects = p.effects[:0]
}
