//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// FlashSource reports the current screen-flash opacity.
type FlashSource interface {
	Opacity() (float64, bool)
}

// Overlay draws the impact flash and the optional key help on top of the
// globe view.
type Overlay struct {
	flash    FlashSource
	showHelp bool
	pixel    *ebiten.Image
}

// NewOverlay constructs a new overlay instance. flash may be nil.
func NewOverlay(flash FlashSource) *Overlay {
	o := &Overlay{flash: flash, showHelp: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the help text with the H key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the overlay over a width×height view.
func (o *Overlay) Draw(screen *ebiten.Image, width, height int) {
	if o.showHelp {
		face := basicfont.Face7x13
		y := height - helpLineHeight*len(helpLines)
		for _, line := range helpLines {
			text.Draw(screen, line, face, 10, y, color.RGBA{R: 150, G: 160, B: 175, A: 200})
			y += helpLineHeight
		}
	}
	if o.flash == nil {
		return
	}
	opacity, visible := o.flash.Opacity()
	if !visible || opacity <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width), float64(height))
	op.ColorScale.ScaleAlpha(float32(clamp01(opacity)))
	screen.DrawImage(o.pixel, op)
}

var helpLines = []string{
	"Left click: pick target   Right drag: orbit   Wheel: zoom",
	"Space/Enter: simulate   D: deflect   R: reset   H: help   Q: quit",
}

const helpLineHeight = 16

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
