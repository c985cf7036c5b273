package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	FishCount    int
	Fishing      bool
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUDAction reports what the player pressed this frame.
type HUDAction uint8

const (
	HUDNone HUDAction = iota
	HUDAddFish
)

// HUD renders the add button and the watermark.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

const (
	buttonWidth  = 160
	buttonHeight = 40
	buttonMargin = 16
)

// ButtonRect returns the add button's screen rectangle.
func ButtonRect(screenWidth int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenWidth - buttonWidth - buttonMargin),
		Y:      buttonMargin,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// Draw renders the HUD and returns the button pressed, if any.
func (h *HUD) Draw(data HUDData) HUDAction {
	t := h.renderer.Theme

	// Watermark
	rl.DrawText(data.Title, buttonMargin, data.ScreenHeight-40, 28, WithAlpha(rl.White, 0.35))

	rl.DrawText(fmt.Sprintf("Fish: %d", data.FishCount), buttonMargin, buttonMargin, t.FontSize, t.TextColor)
	if data.FPS > 0 {
		rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), buttonMargin, buttonMargin+t.LineHeight, 14, t.MutedColor)
	}

	label := fmt.Sprintf("Add Fish (%d)", data.FishCount)
	if data.Fishing {
		label = "Fishing..."
	}
	if gui.Button(ButtonRect(data.ScreenWidth), label) && !data.Fishing {
		return HUDAddFish
	}
	return HUDNone
}

// DrawLoading renders the splash shown before the tank is ready.
func (h *HUD) DrawLoading(screenWidth, screenHeight int32) {
	h.renderer.DrawTextCentered("Loading aquarium...", screenWidth/2, screenHeight/2-10, 20, h.renderer.Theme.TextColor)
}
