// Package scene stores the renderable entities produced by the simulation.
// The simulation only adds and removes visuals; drawing is left to the
// front-end.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies how a visual should be drawn.
type Kind uint8

const (
	// KindMeteor is the projectile sphere.
	KindMeteor Kind = iota
	// KindExplosion is a point cloud.
	KindExplosion
	// KindShockwave is a ring scaled around its position.
	KindShockwave
	// KindTargetMarker is the small sphere on the impact site.
	KindTargetMarker
	// KindDeflector is the cone aimed at the meteor.
	KindDeflector
)

func (k Kind) String() string {
	switch k {
	case KindMeteor:
		return "meteor"
	case KindExplosion:
		return "explosion"
	case KindShockwave:
		return "shockwave"
	case KindTargetMarker:
		return "target-marker"
	case KindDeflector:
		return "deflector"
	default:
		return "unknown"
	}
}

// Visual is a single renderable entity. Owners mutate Position, Opacity and
// Scale in place; the renderer only reads.
type Visual struct {
	Kind     Kind
	Position mgl64.Vec3
	Radius   float64
	Height   float64
	Color    colorful.Color
	Emissive colorful.Color
	Opacity  float64
	Scale    float64
	Additive bool

	// Points holds particle positions for point-cloud visuals.
	Points []mgl64.Vec3
	// Facing is the look-at target for oriented visuals (deflector cone).
	Facing mgl64.Vec3
}

// Scene accepts visuals from their owners.
type Scene interface {
	Add(v *Visual)
	Remove(v *Visual)
}

// Graph is an insertion-ordered Scene.
type Graph struct {
	visuals []*Visual
	index   map[*Visual]int
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[*Visual]int)}
}

// Add appends v. Adding a visual twice is a no-op.
func (g *Graph) Add(v *Visual) {
	if v == nil {
		return
	}
	if _, ok := g.index[v]; ok {
		return
	}
	g.index[v] = len(g.visuals)
	g.visuals = append(g.visuals, v)
}

// Remove drops v, keeping the order of the remaining visuals.
func (g *Graph) Remove(v *Visual) {
	i, ok := g.index[v]
	if !ok {
		return
	}
	delete(g.index, v)
	copy(g.visuals[i:], g.visuals[i+1:])
	g.visuals[len(g.visuals)-1] = nil
	g.visuals = g.visuals[:len(g.visuals)-1]
	for j := i; j < len(g.visuals); j++ {
		g.index[g.visuals[j]] = j
	}
}

// Contains reports whether v is currently in the graph.
func (g *Graph) Contains(v *Visual) bool {
	_, ok := g.index[v]
	return ok
}

// Len returns the number of live visuals.
func (g *Graph) Len() int { return len(g.visuals) }

// Visuals exposes the live visuals in insertion order. The slice is only valid
// until the next Add or Remove.
func (g *Graph) Visuals() []*Visual { return g.visuals }

// Count returns how many live visuals have the given kind.
func (g *Graph) Count(kind Kind) int {
	n := 0
	for _, v := range g.visuals {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// Clear removes every visual.
func (g *Graph) Clear() {
	for i := range g.visuals {
		g.visuals[i] = nil
	}
	g.visuals = g.visuals[:0]
	clear(g.index)
}
