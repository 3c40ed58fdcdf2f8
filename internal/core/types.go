package core

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"meteorfall/internal/scene"
)

// Sim defines the minimal contract a frame-driven simulation must implement.
type Sim interface {
	Name() string
	Reset(seed int64)
	Step()
	Scene() *scene.Graph
}

// Action is a named one-shot command exposed on the HUD.
type Action struct {
	Key   string
	Label string
	Hint  string
}

// ActionProvider exposes HUD buttons. Trigger errors are user-visible
// notifications, never fatal.
type ActionProvider interface {
	Actions() []Action
	Trigger(key string) error
}

// Picker accepts a pointer ray in world space. It reports whether the ray
// selected anything.
type Picker interface {
	Pick(origin, direction mgl64.Vec3) bool
}

// StatusProvider returns short human-readable status lines.
type StatusProvider interface {
	StatusLines() []string
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
