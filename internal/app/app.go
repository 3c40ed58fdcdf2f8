//go:build ebiten

package app

import (
	"errors"
	"log/slog"

	"meteorfall/internal/core"
	"meteorfall/internal/impact"
	"meteorfall/internal/render"
	"meteorfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	camera  *render.Camera
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay
	prefs   *PreferencesManager
	logger  *slog.Logger

	seed     int64
	width    int
	height   int
	dragging bool
	lastX    int
	lastY    int
}

// Options collects the Game collaborators.
type Options struct {
	Scale    int
	Seed     int64
	Width    int
	Height   int
	HUDWidth int
	Prefs    *PreferencesManager
	Logger   *slog.Logger
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	viewW := opts.Width - opts.HUDWidth
	cam := render.NewCamera(viewW, opts.Height)
	g := &Game{
		sim:     sim,
		camera:  cam,
		painter: render.NewPainter(cam, render.NewStarfield(5000, opts.Seed), opts.Scale),
		hud:     ui.NewHUD(sim, opts.HUDWidth),
		prefs:   opts.Prefs,
		logger:  logger,
		seed:    opts.Seed,
		width:   opts.Width,
		height:  opts.Height,
	}
	var flash ui.FlashSource
	if s, ok := sim.(*impact.Simulation); ok {
		flash = s.Flash()
		if g.prefs != nil {
			g.prefs.Apply(s)
		}
	}
	g.overlay = ui.NewOverlay(flash)
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.savePrefs()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.trigger("simulate")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.trigger("deflect")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}

	viewW := g.viewWidth()
	if err := g.hud.Update(viewW); err != nil {
		g.report(err)
	}
	g.handlePointer(viewW)
	g.overlay.Update()
	g.camera.Update()

	g.sim.Step()
	return nil
}

func (g *Game) handlePointer(viewW int) {
	mx, my := ebiten.CursorPosition()
	if _, wy := ebiten.Wheel(); wy != 0 && mx < viewW {
		g.camera.Zoom(wy)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && mx < viewW {
		if p, ok := g.sim.(core.Picker); ok {
			ray := g.camera.PickRay(float64(mx), float64(my))
			p.Pick(ray.Origin, ray.Direction)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && mx < viewW {
		g.dragging = true
		g.lastX, g.lastY = mx, my
	}
	if g.dragging {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			g.dragging = false
			return
		}
		g.camera.Orbit(float64(mx-g.lastX), float64(my-g.lastY))
		g.lastX, g.lastY = mx, my
	}
}

func (g *Game) trigger(key string) {
	runner, ok := g.sim.(core.ActionProvider)
	if !ok {
		return
	}
	if err := runner.Trigger(key); err != nil {
		g.report(err)
		return
	}
	if key == "simulate" {
		g.savePrefs()
	}
}

func (g *Game) report(err error) {
	switch {
	case errors.Is(err, impact.ErrNotInFlight):
		return
	case errors.Is(err, impact.ErrTooLateToDeflect):
		g.hud.Notify("Too late to deflect! The meteor is too close to Earth.")
	default:
		g.logger.Error("action failed", "err", err)
		g.hud.Notify(err.Error())
	}
}

func (g *Game) savePrefs() {
	s, ok := g.sim.(*impact.Simulation)
	if !ok || g.prefs == nil {
		return
	}
	g.prefs.Capture(s)
	if err := g.prefs.Save(); err != nil {
		g.logger.Warn("preferences not saved", "err", err)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	viewW := g.viewWidth()
	g.painter.Draw(screen, g.sim.Scene())
	g.overlay.Draw(screen, viewW, g.height)
	g.hud.Draw(screen, viewW, g.height)
}

// Layout tracks the window size and returns it as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	g.camera.Resize(g.viewWidth(), g.height)
	return g.width, g.height
}

func (g *Game) viewWidth() int {
	w := g.width - g.hud.Width()
	if w < 1 {
		w = 1
	}
	return w
}
