package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixeltank/aquarium"
	"github.com/pthm-cable/pixeltank/fishing"
)

// Overlays draws the modal layers above the tank.
type Overlays struct {
	renderer *Renderer
}

// NewOverlays creates the overlay renderer.
func NewOverlays() *Overlays {
	return &Overlays{renderer: NewRenderer()}
}

// DrawFishing renders the minigame card centred on screen.
func (o *Overlays) DrawFishing(s fishing.Session, p fishing.Params, holding bool, screenWidth, screenHeight int32) {
	r := o.renderer
	t := r.Theme

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.Color{R: 0, G: 0, B: 0, A: 110})

	trackH := int32(p.TrackHeight)
	trackW := int32(48)
	cardW := int32(260)
	cardH := trackH + 3*t.Padding + t.HeaderFontSize + t.LineHeight
	cardX := screenWidth/2 - cardW/2
	cardY := screenHeight/2 - cardH/2
	r.DrawPanel(cardX, cardY, cardW, cardH)
	r.DrawTextCentered("Catch a fish!", screenWidth/2, cardY+t.Padding, t.HeaderFontSize, t.TitleColor)

	trackX := cardX + cardW/2 - trackW
	trackY := cardY + 2*t.Padding + t.HeaderFontSize
	rl.DrawRectangle(trackX, trackY, trackW, trackH, t.TrackBg)

	zone := t.ZoneFill
	if s.Contained(p) {
		zone = t.ZoneFillActive
	}
	rl.DrawRectangle(trackX+2, trackY+int32(s.ZonePos), trackW-4, int32(p.ZoneSize), zone)

	targetY := float32(trackY) + float32(s.TargetPos) + float32(p.TargetSize)/2
	rl.DrawCircle(trackX+trackW/2, int32(targetY), float32(p.TargetSize)/2, t.TargetColor)
	rl.DrawRectangleLines(trackX, trackY, trackW, trackH, t.PanelBorder)

	r.DrawVerticalBar(trackX+trackW+t.Padding, trackY, 16, trackH, s.Progress/100)

	hint := "Hold SPACE to reel up"
	if holding {
		hint = "Reeling..."
	}
	r.DrawTextCentered(hint, screenWidth/2, trackY+trackH+t.Padding/2, 16, t.MutedColor)
}

// DrawToast renders the current toast at the bottom centre.
func (o *Overlays) DrawToast(toast aquarium.Toast, p aquarium.ToastParams, screenWidth, screenHeight int32) {
	t := o.renderer.Theme
	alpha := toast.Alpha(p)
	if alpha <= 0 {
		return
	}
	bg := t.ToastAdd
	if toast.Kind == aquarium.ToastRemove {
		bg = t.ToastRemove
	}

	w := rl.MeasureText(toast.Message, t.FontSize) + 2*t.Padding
	h := t.FontSize + t.Padding
	x := screenWidth/2 - w/2
	y := screenHeight - h - 80
	rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
	rl.DrawRectangleRounded(rect, 0.4, 8, WithAlpha(bg, alpha))
	rl.DrawText(toast.Message, x+t.Padding, y+t.Padding/2, t.FontSize, WithAlpha(t.TextColor, alpha))
}

var helpLines = []string{
	"Click \"Add Fish\" to go fishing.",
	"Hold SPACE to raise the green zone,",
	"release to let it sink.",
	"Keep the fish inside the zone to fill the bar.",
	"Click a fish to release it.",
	"ESC cancels fishing, H shows this help.",
}

// DrawHelp renders the onboarding card and reports whether it was dismissed.
func (o *Overlays) DrawHelp(screenWidth, screenHeight int32) bool {
	r := o.renderer
	t := r.Theme

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.Color{R: 0, G: 0, B: 0, A: 140})

	cardW := int32(460)
	cardH := t.HeaderFontSize + int32(len(helpLines))*t.LineHeight + 4*t.Padding + buttonHeight
	cardX := screenWidth/2 - cardW/2
	cardY := screenHeight/2 - cardH/2
	r.DrawPanel(cardX, cardY, cardW, cardH)
	r.DrawTextCentered("Welcome to PixelTank", screenWidth/2, cardY+t.Padding, t.HeaderFontSize, t.TitleColor)

	y := cardY + 2*t.Padding + t.HeaderFontSize
	for _, line := range helpLines {
		rl.DrawText(line, cardX+2*t.Padding, y, t.FontSize, t.TextColor)
		y += t.LineHeight
	}

	btn := rl.Rectangle{
		X:      float32(screenWidth/2 - 60),
		Y:      float32(y + t.Padding),
		Width:  120,
		Height: buttonHeight,
	}
	return gui.Button(btn, "Got it")
}
