//go:build !ebiten

package ui

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Controller, int) *HUD { return nil }

// SetMessage is a no-op in the headless build.
func (h *HUD) SetMessage(string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) error { return nil }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int, int) {}
