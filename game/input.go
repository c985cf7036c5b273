package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixeltank/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.aq.ToggleHelp()
	}

	_, fishingActive := g.aq.Fishing()

	if rl.IsKeyPressed(rl.KeyEscape) {
		switch {
		case fishingActive:
			g.aq.Cancel()
		case g.aq.HelpVisible():
			g.aq.DismissHelp()
		}
	}

	action := g.hudAction
	g.hudAction = ui.HUDNone
	if action == ui.HUDAddFish && !g.aq.HelpVisible() {
		g.aq.RequestAdd()
	}

	_, fishingActive = g.aq.Fishing()
	if fishingActive {
		g.aq.SetHolding(rl.IsKeyDown(rl.KeySpace) || rl.IsMouseButtonDown(rl.MouseButtonLeft))
		return
	}

	if g.aq.HelpVisible() || !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if rl.CheckCollisionPointRec(mouse, ui.ButtonRect(int32(g.screenWidth))) {
		return
	}
	if id, ok := g.pool.Pick(float64(mouse.X), float64(mouse.Y)); ok {
		g.aq.Click(id)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.aq.Resize(float64(w), float64(h))
	if g.water != nil {
		g.water.Resize(w, h)
	}
}
