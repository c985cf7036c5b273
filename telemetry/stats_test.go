package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/pixeltank/components"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{80, 20, 30, 40, 50, 60, 70, 25, 35, 45}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-45.5) > 1e-9 {
		t.Errorf("mean = %v, want 45.5", s.Mean)
	}
	if s.Std <= 0 {
		t.Errorf("std = %v, want positive", s.Std)
	}
	if !(20 <= s.P10 && s.P10 <= s.P50 && s.P50 <= s.P90 && s.P90 <= 80) {
		t.Errorf("percentiles not ordered within range: %+v", s)
	}
	if values[0] != 80 {
		t.Error("input slice was reordered")
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty sample = %+v, want zeros", s)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1)
	for i := 0; i < 10; i++ {
		c.Advance(50)
	}
	if c.ShouldFlush() {
		t.Fatal("window flushed after 500ms of a 1s window")
	}
	for i := 0; i < 10; i++ {
		c.Advance(50)
	}
	if !c.ShouldFlush() {
		t.Fatal("window not flushed after 1s")
	}

	c.RecordAttempt()
	c.RecordCatch()
	c.RecordAdd()
	c.RecordAttempt()
	c.RecordEscape()
	c.RecordRemove()

	fish := []components.Fish{
		{ID: "a", Species: components.Goldfish, State: components.Moving, Speed: 40},
		{ID: "b", Species: components.Goldfish, State: components.Idle},
		{ID: "c", Species: components.Tetra, State: components.Moving, Speed: 60},
	}
	s := c.Flush(fish, 7, 1)

	if s.WindowEndTick != 20 || s.SimTimeSec != 1 {
		t.Errorf("window end %d sim time %v", s.WindowEndTick, s.SimTimeSec)
	}
	if s.FishCount != 3 || s.Goldfish != 2 || s.Tetra != 1 || s.Moving != 2 {
		t.Errorf("population = %+v", s)
	}
	if s.Added != 1 || s.Removed != 1 || s.Catches != 1 || s.Escapes != 1 || s.Attempts != 2 {
		t.Errorf("events = %+v", s)
	}
	if s.CatchRate != 0.5 {
		t.Errorf("catch rate = %v, want 0.5", s.CatchRate)
	}
	if s.SpeedMean != 50 {
		t.Errorf("speed mean = %v, want 50", s.SpeedMean)
	}
	if s.Saves != 7 || s.SaveErrors != 1 {
		t.Errorf("saves %d errors %d", s.Saves, s.SaveErrors)
	}

	if c.ShouldFlush() {
		t.Error("window still due right after flush")
	}
	next := c.Flush(nil, 9, 1)
	if next.Added != 0 || next.Catches != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.Saves != 2 || next.SaveErrors != 0 {
		t.Errorf("save deltas = %d/%d, want 2/0", next.Saves, next.SaveErrors)
	}
	if next.WindowStartTick != 20 {
		t.Errorf("next window starts at %d, want 20", next.WindowStartTick)
	}
}
