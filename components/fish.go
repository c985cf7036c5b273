// Package components defines the fish data model and the ECS components of the sprite pool.
package components

import "fmt"

// Species is the closed set of fish kinds.
type Species string

const (
	Pufferfish Species = "pufferfish"
	Goldfish   Species = "goldfish"
	Tetra      Species = "tetra"
	Beta       Species = "beta"
)

// AllSpecies lists every species in a stable order.
var AllSpecies = []Species{Pufferfish, Goldfish, Tetra, Beta}

// Valid reports whether s is one of the known species.
func (s Species) Valid() bool {
	switch s {
	case Pufferfish, Goldfish, Tetra, Beta:
		return true
	}
	return false
}

// DisplayName is the human-readable name used in toasts.
func (s Species) DisplayName() string {
	switch s {
	case Pufferfish:
		return "Pufferfish"
	case Goldfish:
		return "Goldfish"
	case Tetra:
		return "Tetra"
	case Beta:
		return "Beta Fish"
	}
	return string(s)
}

// UnmarshalText rejects unknown species so a corrupt record fails to load.
func (s *Species) UnmarshalText(b []byte) error {
	v := Species(b)
	if !v.Valid() {
		return fmt.Errorf("unknown species %q", string(b))
	}
	*s = v
	return nil
}

// BehaviorState is the swimming state of a fish.
type BehaviorState string

const (
	Idle   BehaviorState = "idle"
	Moving BehaviorState = "moving"
)

// UnmarshalText rejects anything other than idle or moving.
func (b *BehaviorState) UnmarshalText(text []byte) error {
	switch v := BehaviorState(text); v {
	case Idle, Moving:
		*b = v
		return nil
	}
	return fmt.Errorf("unknown behavior state %q", string(text))
}

// Fish is one autonomous inhabitant of the tank.
// ID and Species never change after creation.
type Fish struct {
	ID         string        `json:"id"`
	Species    Species       `json:"species"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Direction  float64       `json:"direction"`  // radians in [0, 2π)
	Speed      float64       `json:"speed"`      // px/s, 0 while idle
	State      BehaviorState `json:"state"`
	StateTimer float64       `json:"stateTimer"` // ms until next toggle
}

// Sprite is the visual identity of a fish in the sprite pool.
type Sprite struct {
	FishID  string
	Species Species
	Scale   float64
	Order   int // draw order, later is on top
}

// Transform is the per-frame placement of a sprite.
type Transform struct {
	X, Y       float64
	Rotation   float64 // radians, small bobbing tilt
	FacingLeft bool
}
