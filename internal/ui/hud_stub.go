//go:build !ebiten

package ui

import "meteorfall/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Notify is a no-op in the headless build.
func (h *HUD) Notify(string) {}

// Contains always reports false in the headless build.
func (h *HUD) Contains(int, int) bool { return false }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) error { return nil }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
