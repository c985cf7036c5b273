package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawTextCentered draws text horizontally centred on cx.
func (r *Renderer) DrawTextCentered(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}

// DrawVerticalBar draws a bottom-up fill bar for a [0, 1] value.
func (r *Renderer) DrawVerticalBar(x, y, width, height int32, value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	rl.DrawRectangle(x, y, width, height, r.Theme.TrackBg)

	c := r.Theme.ProgressHigh
	if value < 0.3 {
		c = r.Theme.ProgressLow
	} else if value < 0.6 {
		c = r.Theme.ProgressMedium
	}
	fill := int32(float64(height) * value)
	rl.DrawRectangle(x, y+height-fill, width, fill, c)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}
