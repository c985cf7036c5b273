package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixeltank/ui"
)

// Draw renders the tank, the fish and the UI layers.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Black)

	w := int32(g.screenWidth)
	h := int32(g.screenHeight)

	g.water.Draw(float32(g.aq.NowMs() / 1000))
	g.fish.Draw(g.pool)

	session, fishingActive := g.aq.Fishing()
	action := g.hud.Draw(ui.HUDData{
		Title:        g.opts.Title,
		FishCount:    g.aq.Len(),
		Fishing:      fishingActive,
		FPS:          rl.GetFPS(),
		ScreenWidth:  w,
		ScreenHeight: h,
	})
	if action != ui.HUDNone {
		g.hudAction = action
	}

	if fishingActive {
		g.overlays.DrawFishing(session, g.aq.FishingParams(), g.aq.Holding(), w, h)
	}
	if toast, ok := g.aq.Toast(); ok {
		g.overlays.DrawToast(toast, g.aq.ToastParams(), w, h)
	}
	if g.aq.HelpVisible() && g.overlays.DrawHelp(w, h) {
		g.aq.DismissHelp()
	}

	g.aq.RecordFrame()
}
