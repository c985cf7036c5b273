package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pixeltank/aquarium"
	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/fishing"
)

var (
	styleWater  = tcell.StyleDefault.Background(tcell.NewRGBColor(14, 58, 110))
	styleSand   = tcell.StyleDefault.Background(tcell.NewRGBColor(222, 196, 140)).Foreground(tcell.NewRGBColor(160, 130, 80))
	styleStatus = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	stylePanel  = tcell.StyleDefault.Background(tcell.NewRGBColor(14, 36, 58)).Foreground(tcell.ColorWhite)
	styleTrack  = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 70, 100))
	styleZone   = tcell.StyleDefault.Background(tcell.NewRGBColor(120, 210, 120))

	targetColor = tcell.NewRGBColor(242, 134, 46)
)

var mirrored = map[rune]rune{
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'{': '}', '}': '{',
	'[': ']', ']': '[',
	'/': '\\', '\\': '/',
}

// mirrorGlyph flips a right-facing glyph so it faces left.
func mirrorGlyph(g string) string {
	rs := []rune(g)
	out := make([]rune, len(rs))
	for i, r := range rs {
		if m, ok := mirrored[r]; ok {
			r = m
		}
		out[len(rs)-1-i] = r
	}
	return string(out)
}

func putString(c Canvas, x, y int, s string, style tcell.Style) {
	w, h := c.Size()
	if y < 0 || y >= h {
		return
	}
	for i, r := range []rune(s) {
		if cx := x + i; cx >= 0 && cx < w {
			c.SetContent(cx, y, r, nil, style)
		}
	}
}

func fillRect(c Canvas, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		putString(c, x, row, strings.Repeat(" ", max(w, 0)), style)
	}
}

// draw renders the whole frame onto c.
func (a *App) draw(c Canvas) {
	cols, rows := c.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	tankRows := max(rows-1, 1)

	a.drawTank(c, cols, tankRows)
	a.drawFish(c, tankRows)

	if s, active := a.aq.Fishing(); active {
		a.drawFishing(c, s, a.aq.FishingParams(), cols, tankRows)
	}
	if a.aq.HelpVisible() {
		drawHelp(c, cols, tankRows)
	}
	a.drawStatus(c, cols, rows-1)
}

func (a *App) drawTank(c Canvas, cols, tankRows int) {
	fillRect(c, 0, 0, cols, tankRows, styleWater)

	// Sand covers the floor margin below the swimmable area.
	floor := a.aq.Swimmable().MaxY
	_, sy := a.cam.WorldToScreen(0, floor)
	sandTop := int(math.Ceil(sy))
	for row := sandTop; row < tankRows; row++ {
		putString(c, 0, row, strings.Repeat(".", cols), styleSand)
	}
}

func (a *App) drawFish(c Canvas, tankRows int) {
	a.pool.Each(func(s *components.Sprite, t *components.Transform) {
		glyph := a.glyphs[s.Species]
		if glyph == "" {
			glyph = "><>"
		}
		if t.FacingLeft {
			glyph = mirrorGlyph(glyph)
		}
		sx, sy := a.cam.WorldToScreen(t.X, t.Y)
		row := int(sy)
		if row >= tankRows {
			row = tankRows - 1
		}
		n := len([]rune(glyph))
		style := styleWater.Foreground(a.colors[s.Species]).Bold(true)
		putString(c, int(sx)-n/2, row, glyph, style)
	})
}

func (a *App) drawFishing(c Canvas, s fishing.Session, p fishing.Params, cols, tankRows int) {
	trackRows := min(tankRows-4, 20)
	if trackRows < 3 || p.TrackHeight <= 0 {
		putString(c, 0, 0, fmt.Sprintf("Fishing %3.0f%%", s.Progress), stylePanel)
		return
	}
	boxW := 24
	boxH := trackRows + 3
	x0 := (cols - boxW) / 2
	y0 := (tankRows - boxH) / 2
	fillRect(c, x0, y0, boxW, boxH, stylePanel)
	putString(c, x0+2, y0, "Catch a fish!", stylePanel.Bold(true))

	toRow := func(px float64) int {
		r := int(px / p.TrackHeight * float64(trackRows))
		return min(max(r, 0), trackRows-1)
	}
	trackX := x0 + 4
	trackY := y0 + 1
	fillRect(c, trackX, trackY, 4, trackRows, styleTrack)
	zoneTop := toRow(s.ZonePos)
	zoneBottom := toRow(s.ZonePos + p.ZoneSize - 1)
	fillRect(c, trackX, trackY+zoneTop, 4, zoneBottom-zoneTop+1, styleZone)

	targetRow := toRow(s.TargetPos + p.TargetSize/2)
	bg := styleTrack
	if targetRow >= zoneTop && targetRow <= zoneBottom {
		bg = styleZone
	}
	putString(c, trackX+1, trackY+targetRow, "<>", bg.Foreground(targetColor))

	// Progress fills bottom-up beside the track.
	filled := int(s.Progress / 100 * float64(trackRows))
	for i := 0; i < trackRows; i++ {
		ch := "|"
		if trackRows-1-i < filled {
			ch = "#"
		}
		putString(c, trackX+7, trackY+i, ch, stylePanel)
	}
	hint := "SPACE: reel"
	if a.aq.Holding() {
		hint = "reeling..."
	}
	putString(c, x0+2, y0+boxH-1, hint, stylePanel)
}

var helpLines = []string{
	"Welcome to PixelTank",
	"",
	"a      go fishing for a new fish",
	"space  tap to raise the zone",
	"esc    give up fishing",
	"click  release a fish",
	"h      toggle this help",
	"q      quit",
}

func drawHelp(c Canvas, cols, tankRows int) {
	boxW := 40
	boxH := len(helpLines) + 2
	x0 := max((cols-boxW)/2, 0)
	y0 := max((tankRows-boxH)/2, 0)
	fillRect(c, x0, y0, boxW, boxH, stylePanel)
	for i, line := range helpLines {
		style := stylePanel
		if i == 0 {
			style = style.Bold(true)
		}
		putString(c, x0+2, y0+1+i, line, style)
	}
}

func (a *App) drawStatus(c Canvas, cols, row int) {
	fillRect(c, 0, row, cols, 1, styleStatus)
	left := fmt.Sprintf(" PixelTank  fish: %d  [a]dd [h]elp [q]uit", a.aq.Len())
	putString(c, 0, row, left, styleStatus)

	toast, ok := a.aq.Toast()
	if !ok {
		return
	}
	style := styleStatus.Foreground(tcell.ColorYellow)
	if toast.Kind == aquarium.ToastRemove {
		style = styleStatus.Foreground(tcell.ColorAqua)
	}
	if toast.Alpha(a.aq.ToastParams()) < 0.5 {
		style = style.Dim(true)
	}
	putString(c, max(cols-len([]rune(toast.Message))-1, len([]rune(left))+2), row, toast.Message, style)
}
