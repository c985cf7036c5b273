// Package tui is the terminal front-end of the aquarium.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pixeltank/aquarium"
	"github.com/pthm-cable/pixeltank/camera"
	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/fishing"
	"github.com/pthm-cable/pixeltank/sprites"
)

// Canvas is the drawing surface; tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Size() (width, height int)
}

// Options configures the terminal front-end.
type Options struct {
	Frame     time.Duration
	HoldMs    float64 // a Space press counts as held for this long
	CellWidth float64 // tank pixels per column; rows are twice as tall
	Sound     bool
}

// OptionsFromConfig builds terminal options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	t := cfg.Terminal
	return Options{
		Frame:     time.Duration(t.FrameMs) * time.Millisecond,
		HoldMs:    float64(t.HoldMs),
		CellWidth: float64(t.CellWidth),
		Sound:     t.Sound,
	}
}

// App drives an aquarium in a terminal.
type App struct {
	aq     *aquarium.Aquarium
	pool   *sprites.Pool
	cam    *camera.Camera
	opts   Options
	glyphs map[components.Species]string
	colors map[components.Species]tcell.Color
	sound  *Sound

	cols, rows  int
	holdUntilMs float64
	mouseDown   bool
}

// New creates an app for aq. Sound is nil-safe and may be nil.
func New(aq *aquarium.Aquarium, cfg *config.Config, opts Options, sound *Sound) *App {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 10
	}
	if opts.Frame <= 0 {
		opts.Frame = 33 * time.Millisecond
	}
	a := &App{
		aq:     aq,
		opts:   opts,
		glyphs: make(map[components.Species]string),
		colors: make(map[components.Species]tcell.Color),
		sound:  sound,
		pool: sprites.NewPool(func(s components.Species) float64 {
			return cfg.SpeciesByName(string(s)).Scale
		}),
	}
	for _, s := range components.AllSpecies {
		sc := cfg.SpeciesByName(string(s))
		a.glyphs[s] = sc.Glyph
		a.colors[s] = tcell.GetColor(sc.Color)
	}
	b := aq.Bounds()
	a.cam = camera.New(1, 1, b.Width, b.Height, false)
	return a
}

// resize fits the tank to a cols x rows terminal. The last row is the
// status line.
func (a *App) resize(cols, rows int) {
	if cols == a.cols && rows == a.rows {
		return
	}
	a.cols, a.rows = cols, rows
	tankRows := max(rows-1, 1)
	w := float64(cols) * a.opts.CellWidth
	h := float64(tankRows) * a.opts.CellWidth * 2
	a.aq.Resize(w, h)
	a.cam.SetWorld(w, h)
	a.cam.Resize(float64(cols), float64(tankRows))
}

// step advances the session by deltaMs.
func (a *App) step(deltaMs float64) {
	if _, active := a.aq.Fishing(); active {
		a.aq.SetHolding(a.aq.NowMs() < a.holdUntilMs)
	}
	outcome := a.aq.Tick(deltaMs)
	if outcome != fishing.None {
		a.holdUntilMs = 0
		a.sound.Outcome(outcome)
	}
	a.pool.Sync(a.aq.Fish(), a.aq.NowMs())
}

// handleKey applies one key event. It returns false when the app should quit.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if _, active := a.aq.Fishing(); active {
			a.aq.Cancel()
			a.holdUntilMs = 0
		} else if a.aq.HelpVisible() {
			a.aq.DismissHelp()
		}
		return true
	case tcell.KeyEnter:
		a.aq.DismissHelp()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q', 'Q':
		return false
	case 'h', 'H', '?':
		a.aq.ToggleHelp()
	case 'a', 'A':
		if a.aq.HelpVisible() {
			a.aq.DismissHelp()
		}
		if a.aq.RequestAdd() {
			a.sound.Start()
		}
	case ' ':
		if _, active := a.aq.Fishing(); active {
			a.holdUntilMs = a.aq.NowMs() + a.opts.HoldMs
			a.aq.SetHolding(true)
		}
	}
	return true
}

// handleClick removes the fish drawn at cell (x, y).
func (a *App) handleClick(x, y int) bool {
	if _, active := a.aq.Fishing(); active || a.aq.HelpVisible() {
		return false
	}
	if y >= a.rows-1 {
		return false
	}
	wx, wy := a.cam.ScreenToWorld(float64(x)+0.5, float64(y)+0.5)
	id, ok := a.pool.Pick(wx, wy)
	if !ok {
		return false
	}
	return a.aq.Click(id)
}

// Run owns screen until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context, screen tcell.Screen) error {
	screen.EnableMouse()
	screen.HideCursor()
	a.resize(screen.Size())
	a.pool.Sync(a.aq.Fish(), a.aq.NowMs())

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(a.opts.Frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev.Key(), ev.Rune()) {
					slog.Info("quit requested")
					return nil
				}
			case *tcell.EventMouse:
				pressed := ev.Buttons()&tcell.Button1 != 0
				if pressed && !a.mouseDown {
					x, y := ev.Position()
					a.handleClick(x, y)
				}
				a.mouseDown = pressed
			case *tcell.EventResize:
				screen.Sync()
				a.resize(screen.Size())
			}

		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			a.step(float64(delta) / float64(time.Millisecond))
			screen.Clear()
			a.draw(screen)
			screen.Show()
			a.aq.RecordFrame()
		}
	}
}
