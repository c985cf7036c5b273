package tui

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pixeltank/aquarium"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/storage"
	"github.com/pthm-cable/pixeltank/tank"
)

type fakeCanvas struct {
	w, h  int
	cells map[[2]int]rune
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (f *fakeCanvas) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = mainc
}

func (f *fakeCanvas) Size() (int, int) { return f.w, f.h }

func (f *fakeCanvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < f.w; x++ {
		r, ok := f.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (f *fakeCanvas) contains(s string) bool {
	for y := 0; y < f.h; y++ {
		if strings.Contains(f.row(y), s) {
			return true
		}
	}
	return false
}

// newTestApp builds an app whose minigame target and zone never move.
func newTestApp(t *testing.T) (*App, *tank.Manager) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(3))
	mgr := tank.Open(storage.NewMemoryStore(), tank.OptionsFromConfig(cfg), rng)

	opts := aquarium.OptionsFromConfig(cfg)
	opts.Fishing.Accel = 0
	opts.Fishing.MaxVelocity = 0
	opts.Fishing.Rise = 0
	opts.Fishing.Fall = 0
	aq := aquarium.New(mgr, opts, rng)

	app := New(aq, cfg, OptionsFromConfig(cfg), nil)
	app.resize(80, 25)
	return app, mgr
}

func TestMirrorGlyph(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"><>", "<><"},
		{"(o>", "<o)"},
		{"}<>", "<>{"},
		{">=>", "<=<"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := mirrorGlyph(tc.in); got != tc.want {
			t.Errorf("mirrorGlyph(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t)
	if app.handleKey(tcell.KeyRune, 'q') {
		t.Error("q did not quit")
	}
	if app.handleKey(tcell.KeyCtrlC, 0) {
		t.Error("ctrl-c did not quit")
	}
	if !app.handleKey(tcell.KeyRune, 'x') {
		t.Error("unbound key quit")
	}
}

func TestAddStartsFishingAndEscapeCancels(t *testing.T) {
	app, _ := newTestApp(t)

	app.handleKey(tcell.KeyRune, 'a')
	if _, active := app.aq.Fishing(); !active {
		t.Fatal("a did not start fishing")
	}
	if app.aq.HelpVisible() {
		t.Error("help still visible after starting to fish")
	}

	app.handleKey(tcell.KeyEscape, 0)
	if _, active := app.aq.Fishing(); active {
		t.Error("escape did not cancel fishing")
	}
}

func TestSpaceHoldsForAShortWindow(t *testing.T) {
	app, _ := newTestApp(t)
	app.handleKey(tcell.KeyRune, 'a')

	app.handleKey(tcell.KeyRune, ' ')
	app.step(16)
	if !app.aq.Holding() {
		t.Fatal("not holding right after space")
	}

	for i := 0; i < 12; i++ {
		app.step(16)
	}
	if app.aq.Holding() {
		t.Error("still holding long after the last space press")
	}
}

func TestClickRemovesFish(t *testing.T) {
	app, mgr := newTestApp(t)
	app.aq.DismissHelp()

	f, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	app.step(0)

	tr, ok := app.pool.Transform(f.ID)
	if !ok {
		t.Fatal("no sprite for new fish")
	}
	sx, sy := app.cam.WorldToScreen(tr.X, tr.Y)
	if !app.handleClick(int(sx), int(sy)) {
		t.Fatalf("click at cell (%d, %d) missed fish at (%.0f, %.0f)", int(sx), int(sy), tr.X, tr.Y)
	}
	if mgr.Len() != 0 {
		t.Errorf("len = %d after click, want 0", mgr.Len())
	}
}

func TestClickIgnoredWhileHelpVisible(t *testing.T) {
	app, mgr := newTestApp(t)
	if !app.aq.HelpVisible() {
		t.Fatal("help not shown on first visit")
	}
	f, _ := mgr.Create()
	app.step(0)

	tr, _ := app.pool.Transform(f.ID)
	sx, sy := app.cam.WorldToScreen(tr.X, tr.Y)
	if app.handleClick(int(sx), int(sy)) {
		t.Error("click removed a fish behind the help overlay")
	}
}

func TestDrawShowsFishAndStatus(t *testing.T) {
	app, mgr := newTestApp(t)
	app.aq.DismissHelp()
	f, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	app.step(0)

	c := newFakeCanvas(80, 25)
	app.draw(c)

	glyph := app.glyphs[f.Species]
	if !c.contains(glyph) && !c.contains(mirrorGlyph(glyph)) {
		t.Errorf("glyph %q not drawn", glyph)
	}
	if status := c.row(24); !strings.Contains(status, "fish: 1") {
		t.Errorf("status line = %q", status)
	}
}

func TestResizeRescalesTank(t *testing.T) {
	app, _ := newTestApp(t)
	app.resize(120, 41)
	b := app.aq.Bounds()
	if b.Width != 1200 || b.Height != 800 {
		t.Errorf("bounds = %vx%v, want 1200x800", b.Width, b.Height)
	}
}
