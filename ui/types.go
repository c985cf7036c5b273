// Package ui draws the aquarium chrome: the add button, the fishing
// overlay, toasts and the help card.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	TitleColor     rl.Color
	TextColor      rl.Color
	MutedColor     rl.Color
	TrackBg        rl.Color
	ZoneFill       rl.Color
	ZoneFillActive rl.Color
	TargetColor    rl.Color
	ProgressLow    rl.Color
	ProgressMedium rl.Color
	ProgressHigh   rl.Color
	ToastAdd       rl.Color
	ToastRemove    rl.Color
	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 14, G: 36, B: 58, A: 230},
		PanelBorder:    rl.Color{R: 120, G: 180, B: 220, A: 255},
		TitleColor:     rl.Color{R: 255, G: 236, B: 170, A: 255},
		TextColor:      rl.RayWhite,
		MutedColor:     rl.Color{R: 170, G: 200, B: 220, A: 255},
		TrackBg:        rl.Color{R: 30, G: 70, B: 100, A: 255},
		ZoneFill:       rl.Color{R: 120, G: 210, B: 120, A: 150},
		ZoneFillActive: rl.Color{R: 150, G: 240, B: 150, A: 200},
		TargetColor:    rl.Color{R: 242, G: 134, B: 46, A: 255},
		ProgressLow:    rl.Color{R: 210, G: 90, B: 90, A: 255},
		ProgressMedium: rl.Color{R: 220, G: 190, B: 90, A: 255},
		ProgressHigh:   rl.Color{R: 100, G: 210, B: 110, A: 255},
		ToastAdd:       rl.Color{R: 40, G: 120, B: 70, A: 235},
		ToastRemove:    rl.Color{R: 120, G: 70, B: 40, A: 235},
		Padding:        12,
		LineHeight:     22,
		FontSize:       18,
		HeaderFontSize: 26,
	}
}

// WithAlpha scales a color's alpha by a in [0, 1].
func WithAlpha(c rl.Color, a float64) rl.Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A) * a)
	return c
}
