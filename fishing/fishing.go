// Package fishing implements the timing minigame that gates adding a fish.
//
// A target drifts along a vertical track as a random walk while the player
// steers a control zone with a single hold input. Progress fills while the
// target stays inside the zone and drains otherwise.
package fishing

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/pixeltank/config"
)

// State is the lifecycle state of the machine.
type State uint8

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Outcome is reported by Tick when a session ends.
type Outcome uint8

const (
	None Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "none"
}

// Params holds the minigame tunables. Per-frame amounts apply to a
// FrameMs-long frame and scale linearly with the real tick length.
type Params struct {
	TrackHeight   float64
	ZoneSize      float64
	TargetSize    float64
	TargetStart   float64
	ZoneStart     float64
	ProgressStart float64
	Accel         float64
	MaxVelocity   float64
	Rise          float64
	Fall          float64
	RateIn        float64
	RateOut       float64
	FrameMs       float64
}

// ParamsFromConfig builds minigame params from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	f := cfg.Fishing
	return Params{
		TrackHeight:   f.TrackHeight,
		ZoneSize:      f.ZoneSize,
		TargetSize:    f.TargetSize,
		TargetStart:   f.TargetStart,
		ZoneStart:     f.ZoneStart,
		ProgressStart: f.ProgressStart,
		Accel:         f.Accel,
		MaxVelocity:   f.MaxVelocity,
		Rise:          f.Rise,
		Fall:          f.Fall,
		RateIn:        f.RateIn,
		RateOut:       f.RateOut,
		FrameMs:       f.FrameMs,
	}
}

// Session is the observable state of a running minigame.
type Session struct {
	TargetPos float64
	TargetVel float64
	ZonePos   float64
	Progress  float64 // [0, 100]
}

// Contained reports whether the target span lies fully inside the zone span.
func (s Session) Contained(p Params) bool {
	return s.TargetPos >= s.ZonePos && s.TargetPos+p.TargetSize <= s.ZonePos+p.ZoneSize
}

// Machine runs one minigame session at a time.
type Machine struct {
	params  Params
	rng     *rand.Rand
	state   State
	session Session
	ticks   int
}

// NewMachine creates an inactive machine drawing randomness from rng.
func NewMachine(p Params, rng *rand.Rand) *Machine {
	return &Machine{params: p, rng: rng}
}

// Start re-seeds the session and activates the machine.
// Starting while active restarts the session.
func (m *Machine) Start() {
	m.session = Session{
		TargetPos: m.params.TargetStart,
		ZonePos:   m.params.ZoneStart,
		Progress:  m.params.ProgressStart,
	}
	m.ticks = 0
	m.state = Active
}

// Cancel abandons the current session without an outcome.
func (m *Machine) Cancel() {
	m.state = Inactive
}

// State returns the lifecycle state.
func (m *Machine) State() State { return m.state }

// Active reports whether a session is running.
func (m *Machine) Active() bool { return m.state == Active }

// Session returns a copy of the current session values.
func (m *Machine) Session() Session { return m.session }

// Params returns the machine's tunables.
func (m *Machine) Params() Params { return m.params }

// Ticks returns how many ticks the current or last session ran.
func (m *Machine) Ticks() int { return m.ticks }

// Tick advances the session by deltaMs with the latest hold input.
// The terminal outcome is returned on the tick that reaches it and the
// machine becomes inactive; ticks while inactive return None.
func (m *Machine) Tick(deltaMs float64, holding bool) Outcome {
	if m.state != Active {
		return None
	}
	if deltaMs < 0 || math.IsNaN(deltaMs) {
		deltaMs = 0
	}
	p := m.params
	f := deltaMs / p.FrameMs
	s := &m.session
	m.ticks++

	s.TargetVel += (m.rng.Float64() - 0.5) * p.Accel * f
	s.TargetVel = clamp(s.TargetVel, -p.MaxVelocity, p.MaxVelocity)
	s.TargetPos = clamp(s.TargetPos+s.TargetVel*f, 0, p.TrackHeight-p.TargetSize)

	if holding {
		s.ZonePos -= p.Rise * f
	} else {
		s.ZonePos += p.Fall * f
	}
	s.ZonePos = clamp(s.ZonePos, 0, p.TrackHeight-p.ZoneSize)

	if s.Contained(p) {
		s.Progress += p.RateIn * f
	} else {
		s.Progress -= p.RateOut * f
	}
	s.Progress = clamp(s.Progress, 0, 100)

	switch {
	case s.Progress >= 100:
		m.state = Inactive
		return Succeeded
	case s.Progress <= 0:
		m.state = Inactive
		return Failed
	}
	return None
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
