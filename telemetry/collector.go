package telemetry

import "github.com/pthm-cable/pixeltank/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowMs float64

	tick            int64
	simMs           float64
	windowStartTick int64
	windowStartMs   float64

	added    int
	removed  int
	catches  int
	escapes  int
	cancels  int
	attempts int

	// Persistence counters at the start of the window
	baseSaves      int
	baseSaveErrors int
}

// NewCollector creates a stats collector flushing every windowSec of simulated time.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 30
	}
	return &Collector{windowMs: windowSec * 1000}
}

// Advance records one tick of deltaMs.
func (c *Collector) Advance(deltaMs float64) {
	c.tick++
	if deltaMs > 0 {
		c.simMs += deltaMs
	}
}

// Tick returns the number of ticks recorded.
func (c *Collector) Tick() int64 { return c.tick }

// RecordAdd records a fish entering the tank.
func (c *Collector) RecordAdd() { c.added++ }

// RecordRemove records a fish leaving the tank.
func (c *Collector) RecordRemove() { c.removed++ }

// RecordAttempt records a fishing session being started.
func (c *Collector) RecordAttempt() { c.attempts++ }

// RecordCatch records a won fishing session.
func (c *Collector) RecordCatch() { c.catches++ }

// RecordEscape records a lost fishing session.
func (c *Collector) RecordEscape() { c.escapes++ }

// RecordCancel records an abandoned fishing session.
func (c *Collector) RecordCancel() { c.cancels++ }

// ShouldFlush returns true if the window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.simMs-c.windowStartMs >= c.windowMs
}

// Flush produces a WindowStats and resets counters for the next window.
// saves and saveErrors are the cumulative persistence counters.
func (c *Collector) Flush(fish []components.Fish, saves, saveErrors int) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.tick,
		SimTimeSec:      c.simMs / 1000,
		FishCount:       len(fish),
		Added:           c.added,
		Removed:         c.removed,
		Catches:         c.catches,
		Escapes:         c.escapes,
		Cancels:         c.cancels,
		Attempts:        c.attempts,
		Saves:           saves - c.baseSaves,
		SaveErrors:      saveErrors - c.baseSaveErrors,
	}
	if finished := c.catches + c.escapes; finished > 0 {
		s.CatchRate = float64(c.catches) / float64(finished)
	}

	speeds := make([]float64, 0, len(fish))
	for _, f := range fish {
		switch f.Species {
		case components.Pufferfish:
			s.Pufferfish++
		case components.Goldfish:
			s.Goldfish++
		case components.Tetra:
			s.Tetra++
		case components.Beta:
			s.Beta++
		}
		if f.State == components.Moving {
			s.Moving++
			speeds = append(speeds, f.Speed)
		}
	}
	ss := ComputeSpeedStats(speeds)
	s.SpeedMean, s.SpeedStd = ss.Mean, ss.Std
	s.SpeedP10, s.SpeedP50, s.SpeedP90 = ss.P10, ss.P50, ss.P90

	c.windowStartTick = c.tick
	c.windowStartMs = c.simMs
	c.added, c.removed = 0, 0
	c.catches, c.escapes, c.cancels, c.attempts = 0, 0, 0, 0
	c.baseSaves, c.baseSaveErrors = saves, saveErrors

	return s
}
