// Package aquarium wires the tank, the behavior model, the fishing minigame
// and telemetry into one tick-driven session used by every front-end.
package aquarium

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/fishing"
	"github.com/pthm-cable/pixeltank/systems"
	"github.com/pthm-cable/pixeltank/tank"
	"github.com/pthm-cable/pixeltank/telemetry"
)

// Options configures an Aquarium.
type Options struct {
	Behavior       systems.BehaviorParams
	Fishing        fishing.Params
	Toast          ToastParams
	StatsWindowSec float64
	LogStats       bool

	// Optional sinks; nil disables them.
	Output  *telemetry.OutputManager
	Metrics *telemetry.Metrics
}

// OptionsFromConfig builds aquarium options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Behavior:       systems.BehaviorParamsFromConfig(cfg),
		Fishing:        fishing.ParamsFromConfig(cfg),
		Toast:          ToastParams{VisibleMs: cfg.Toast.VisibleMs, FadeMs: cfg.Toast.FadeMs},
		StatsWindowSec: cfg.Telemetry.StatsWindow,
	}
}

// Aquarium is a single-threaded session. Adapters call Tick once per frame
// and forward input through the other methods on the same goroutine.
type Aquarium struct {
	mgr     *tank.Manager
	rng     *rand.Rand
	opts    Options
	machine *fishing.Machine

	holding bool
	toast   *Toast
	help    bool
	nowMs   float64

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
}

// New creates a session over mgr. The help overlay starts visible on the
// first visit.
func New(mgr *tank.Manager, opts Options, rng *rand.Rand) *Aquarium {
	return &Aquarium{
		mgr:       mgr,
		rng:       rng,
		opts:      opts,
		machine:   fishing.NewMachine(opts.Fishing, rng),
		help:      mgr.FirstVisit(),
		collector: telemetry.NewCollector(opts.StatsWindowSec),
		perf:      telemetry.NewPerfCollector(120),
	}
}

// Tick advances the session by deltaMs and reports a fishing outcome
// reached during this tick.
func (a *Aquarium) Tick(deltaMs float64) fishing.Outcome {
	if deltaMs < 0 {
		deltaMs = 0
	}
	a.nowMs += deltaMs
	a.perf.StartTick()

	a.perf.StartPhase(telemetry.PhaseFishing)
	outcome := a.machine.Tick(deltaMs, a.holding)
	switch outcome {
	case fishing.Succeeded:
		a.collector.RecordCatch()
		a.holding = false
		if f, err := a.mgr.Create(); err != nil {
			slog.Error("failed to add caught fish", "error", err)
		} else {
			a.collector.RecordAdd()
			a.showToast(ToastAdd, fmt.Sprintf("Added a %s!", f.Species.DisplayName()))
			slog.Info("fish caught", "id", f.ID, "species", f.Species, "ticks", a.machine.Ticks())
		}
	case fishing.Failed:
		a.collector.RecordEscape()
		a.holding = false
		slog.Info("fish escaped", "ticks", a.machine.Ticks())
	}

	a.perf.StartPhase(telemetry.PhaseBehavior)
	next := systems.UpdateAll(a.mgr.Fish(), deltaMs, a.mgr.Bounds(), a.opts.Behavior, a.rng)
	a.mgr.ReplaceAll(next)
	a.advanceToast(deltaMs)

	a.perf.StartPhase(telemetry.PhasePersist)
	a.mgr.Flush()

	a.perf.StartPhase(telemetry.PhaseTelemetry)
	a.collector.Advance(deltaMs)
	if a.collector.ShouldFlush() {
		a.flushStats(next)
	}

	d := a.perf.EndTick()
	if a.opts.Metrics != nil {
		a.opts.Metrics.ObserveTick(d)
	}
	return outcome
}

func (a *Aquarium) flushStats(fish []components.Fish) {
	ps := a.mgr.Stats()
	stats := a.collector.Flush(fish, ps.Saves, ps.SaveErrors)
	perf := a.perf.Stats()

	if a.opts.LogStats {
		slog.Info("stats", "window", stats, "perf", perf)
	}
	if a.opts.Metrics != nil {
		a.opts.Metrics.ObserveWindow(stats)
	}
	if err := a.opts.Output.WriteTelemetry(stats); err != nil {
		slog.Warn("failed to write telemetry", "error", err)
	}
	if err := a.opts.Output.WritePerf(perf, stats.WindowEndTick); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}
	if err := a.opts.Output.WriteMetrics(a.opts.Metrics); err != nil {
		slog.Warn("failed to write metrics", "error", err)
	}
}

// RequestAdd starts a fishing session. It is ignored while one is running.
func (a *Aquarium) RequestAdd() bool {
	if a.machine.Active() {
		return false
	}
	a.machine.Start()
	a.holding = false
	a.collector.RecordAttempt()
	return true
}

// SetHolding records the latest hold input; it is sampled by the next Tick.
func (a *Aquarium) SetHolding(holding bool) { a.holding = holding }

// Holding returns the latest hold input.
func (a *Aquarium) Holding() bool { return a.holding }

// Cancel abandons a running fishing session.
func (a *Aquarium) Cancel() {
	if !a.machine.Active() {
		return
	}
	a.machine.Cancel()
	a.holding = false
	a.collector.RecordCancel()
}

// Click removes the fish with id. Unknown ids are ignored.
func (a *Aquarium) Click(id string) bool {
	f, ok := a.mgr.Remove(id)
	if !ok {
		return false
	}
	a.collector.RecordRemove()
	a.showToast(ToastRemove, fmt.Sprintf("%s swam away...", f.Species.DisplayName()))
	return true
}

// Resize propagates a new window size to the tank bounds.
func (a *Aquarium) Resize(width, height float64) {
	a.mgr.Resize(width, height)
}

// Bounds returns the current window size.
func (a *Aquarium) Bounds() systems.Bounds { return a.mgr.Bounds() }

// Swimmable returns the area fish are confined to.
func (a *Aquarium) Swimmable() systems.Rect {
	return a.mgr.Bounds().Swimmable(a.opts.Behavior.Margins)
}

// Fish returns a copy of the current fish.
func (a *Aquarium) Fish() []components.Fish { return a.mgr.Fish() }

// Len returns the number of fish.
func (a *Aquarium) Len() int { return a.mgr.Len() }

// Fishing returns the running minigame session, if any.
func (a *Aquarium) Fishing() (fishing.Session, bool) {
	return a.machine.Session(), a.machine.Active()
}

// FishingParams returns the minigame geometry for drawing.
func (a *Aquarium) FishingParams() fishing.Params { return a.opts.Fishing }

// Toast returns the visible toast, if any.
func (a *Aquarium) Toast() (Toast, bool) {
	if a.toast == nil {
		return Toast{}, false
	}
	return *a.toast, true
}

// ToastParams returns the toast timing.
func (a *Aquarium) ToastParams() ToastParams { return a.opts.Toast }

func (a *Aquarium) showToast(kind ToastKind, msg string) {
	a.toast = &Toast{Kind: kind, Message: msg}
}

func (a *Aquarium) advanceToast(deltaMs float64) {
	if a.toast == nil {
		return
	}
	a.toast.AgeMs += deltaMs
	if a.toast.expired(a.opts.Toast) {
		a.toast = nil
	}
}

// HelpVisible reports whether the help overlay is shown.
func (a *Aquarium) HelpVisible() bool { return a.help }

// DismissHelp hides the help overlay.
func (a *Aquarium) DismissHelp() { a.help = false }

// ToggleHelp shows or hides the help overlay.
func (a *Aquarium) ToggleHelp() { a.help = !a.help }

// NowMs returns the accumulated session time.
func (a *Aquarium) NowMs() float64 { return a.nowMs }

// TickCount returns the number of ticks run.
func (a *Aquarium) TickCount() int64 { return a.collector.Tick() }

// RecordFrame marks a rendered frame for FPS tracking.
func (a *Aquarium) RecordFrame() { a.perf.RecordFrame() }

// Close writes final state and output.
func (a *Aquarium) Close() {
	if a.machine.Active() {
		a.Cancel()
	}
	a.mgr.Close()
	if a.collector.Tick() > 0 {
		a.flushStats(a.mgr.Fish())
	}
	if err := a.opts.Output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}
