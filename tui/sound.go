package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/pixeltank/fishing"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short sine cues for fishing outcomes.
type Sound struct {
	initialized bool
}

// NewSound opens the speaker. A failure leaves a silent Sound and is
// returned so the caller can log it.
func NewSound() (*Sound, error) {
	s := &Sound{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.initialized = true
	return s, nil
}

// Outcome plays the cue for a finished session.
func (s *Sound) Outcome(o fishing.Outcome) {
	switch o {
	case fishing.Succeeded:
		s.tone(880, 120*time.Millisecond)
	case fishing.Failed:
		s.tone(220, 250*time.Millisecond)
	}
}

// Start plays the cue for a new session.
func (s *Sound) Start() {
	s.tone(440, 60*time.Millisecond)
}

func (s *Sound) tone(freq int, d time.Duration) {
	if s == nil || !s.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// Close releases the speaker.
func (s *Sound) Close() {
	if s == nil || !s.initialized {
		return
	}
	speaker.Close()
	s.initialized = false
}
