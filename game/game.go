// Package game is the raylib window front-end of the aquarium.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/pixeltank/aquarium"
	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/fishing"
	"github.com/pthm-cable/pixeltank/renderer"
	"github.com/pthm-cable/pixeltank/sprites"
	"github.com/pthm-cable/pixeltank/ui"
)

// Options holds runtime options for the window front-end.
type Options struct {
	Headless bool
	Title    string
	FrameMs  float64 // fixed step for headless updates
}

// OptionsFromConfig builds window options from the configuration.
func OptionsFromConfig(cfg *config.Config, headless bool) Options {
	frameMs := 1000.0 / 60
	if cfg.Screen.TargetFPS > 0 {
		frameMs = 1000.0 / float64(cfg.Screen.TargetFPS)
	}
	return Options{Headless: headless, Title: cfg.Screen.Title, FrameMs: frameMs}
}

// Game owns the aquarium session and its window presentation.
type Game struct {
	aq   *aquarium.Aquarium
	pool *sprites.Pool
	opts Options

	// Rendering (nil in headless mode)
	water    *renderer.WaterBackground
	fish     *renderer.FishRenderer
	hud      *ui.HUD
	overlays *ui.Overlays

	screenWidth, screenHeight float32

	// hudAction is the button result from the last frame, applied on the next update.
	hudAction   ui.HUDAction
	lastOutcome fishing.Outcome
}

// NewGameWithOptions wraps aq. In graphics mode it must be called after
// the raylib window exists.
func NewGameWithOptions(aq *aquarium.Aquarium, cfg *config.Config, opts Options, rng *rand.Rand) *Game {
	b := aq.Bounds()
	g := &Game{
		aq:           aq,
		opts:         opts,
		screenWidth:  float32(b.Width),
		screenHeight: float32(b.Height),
	}
	g.pool = sprites.NewPool(func(s components.Species) float64 {
		return cfg.SpeciesByName(string(s)).Scale
	})

	if !opts.Headless {
		g.water = renderer.NewWaterBackground(int32(b.Width), int32(b.Height), float32(cfg.Tank.FloorMargin), rng)
		g.fish = renderer.NewFishRenderer(cfg)
		g.hud = ui.NewHUD()
		g.overlays = ui.NewOverlays()
	}

	g.pool.Sync(aq.Fish(), aq.NowMs())
	return g
}

// Update handles input and advances the session by one rendered frame.
func (g *Game) Update(deltaMs float64) {
	g.handleInput()
	g.step(deltaMs)
}

// UpdateHeadless advances the session by one fixed step without raylib.
func (g *Game) UpdateHeadless() {
	g.step(g.opts.FrameMs)
}

func (g *Game) step(deltaMs float64) {
	outcome := g.aq.Tick(deltaMs)
	if outcome != fishing.None {
		g.lastOutcome = outcome
	}
	created, destroyed := g.pool.Sync(g.aq.Fish(), g.aq.NowMs())
	if created > 0 || destroyed > 0 {
		slog.Debug("sprites synced", "created", created, "destroyed", destroyed, "total", g.pool.Len())
	}
}

// Tick returns the number of simulation ticks run.
func (g *Game) Tick() int64 {
	return g.aq.TickCount()
}

// Aquarium returns the wrapped session.
func (g *Game) Aquarium() *aquarium.Aquarium {
	return g.aq
}

// Pool returns the sprite pool.
func (g *Game) Pool() *sprites.Pool {
	return g.pool
}

// LastOutcome returns the most recent finished fishing outcome.
func (g *Game) LastOutcome() fishing.Outcome {
	return g.lastOutcome
}

// Unload closes the session and flushes persistence.
func (g *Game) Unload() {
	g.aq.Close()
}
