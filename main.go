package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/pixeltank/aquarium"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/game"
	"github.com/pthm-cable/pixeltank/storage"
	"github.com/pthm-cable/pixeltank/tank"
	"github.com/pthm-cable/pixeltank/telemetry"
	"github.com/pthm-cable/pixeltank/tui"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load(".env")

	// CLI flags
	configPath := flag.String("config", os.Getenv("PIXELTANK_CONFIG"), "Path to config.yaml (empty = use defaults)")
	storePath := flag.String("store", os.Getenv("PIXELTANK_STORE"), "Path to the aquarium save file (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Run in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, metrics and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *terminal {
		// stdout belongs to the screen
		logFile, err := os.OpenFile(cfg.Terminal.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file", "path", cfg.Terminal.LogFile, "error", err)
			os.Exit(1)
		}
		defer logFile.Close()
		slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, nil)))
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	path := *storePath
	if path == "" {
		path = cfg.Persistence.Path
	}
	store, err := storage.OpenFileStore(path)
	if err != nil {
		slog.Error("failed to open store", "path", path, "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir, cfg.Telemetry.MetricsFile)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	opts := aquarium.OptionsFromConfig(cfg)
	opts.LogStats = *logStats
	opts.Output = output
	if output != nil {
		opts.Metrics = telemetry.NewMetrics()
	}

	mgr := tank.Open(store, tank.OptionsFromConfig(cfg), rng)
	aq := aquarium.New(mgr, opts, rng)

	slog.Info("starting pixeltank",
		"seed", rngSeed,
		"store", store.Path(),
		"fish", aq.Len(),
		"headless", *headless,
		"tui", *terminal,
		"max_ticks", *maxTicks,
	)

	switch {
	case *headless:
		runHeadless(aq, cfg, rng, *maxTicks)
	case *terminal:
		runTerminal(aq, cfg)
	default:
		runWindow(aq, cfg, rng, *maxTicks)
	}
}

// runHeadless runs the simulation without raylib.
func runHeadless(aq *aquarium.Aquarium, cfg *config.Config, rng *rand.Rand, maxTicks int) {
	g := game.NewGameWithOptions(aq, cfg, game.OptionsFromConfig(cfg, true), rng)
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ctx.Err() == nil {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "fish", aq.Len())
			return
		}
	}
	slog.Info("interrupted", "tick", g.Tick())
}

// runTerminal hands the session to the tcell front-end.
func runTerminal(aq *aquarium.Aquarium, cfg *config.Config) {
	defer aq.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		return
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		return
	}
	defer screen.Fini()

	var sound *tui.Sound
	if cfg.Terminal.Sound {
		s, err := tui.NewSound()
		if err != nil {
			// Non-fatal, the tank runs without sound
			slog.Warn("audio initialization failed", "error", err)
		}
		sound = s
		defer sound.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := tui.New(aq, cfg, tui.OptionsFromConfig(cfg), sound)
	if err := app.Run(ctx, screen); err != nil && ctx.Err() == nil {
		slog.Error("terminal front-end stopped", "error", err)
	}
}

// runWindow opens the raylib window and drives the frame loop.
func runWindow(aq *aquarium.Aquarium, cfg *config.Config, rng *rand.Rand, maxTicks int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape cancels fishing instead of closing the window
	rl.SetExitKey(0)

	g := game.NewGameWithOptions(aq, cfg, game.OptionsFromConfig(cfg, false), rng)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update(float64(rl.GetFrameTime()) * 1000)
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
