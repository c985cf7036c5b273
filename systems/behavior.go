package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
)

// BehaviorParams holds the tunables of the idle/moving state machine.
type BehaviorParams struct {
	MinSpeed         float64 // px/s
	MaxSpeed         float64 // px/s
	MinStateDuration float64 // ms
	MaxStateDuration float64 // ms
	Margins          Margins
}

// BehaviorParamsFromConfig builds behavior params from the loaded configuration.
func BehaviorParamsFromConfig(cfg *config.Config) BehaviorParams {
	return BehaviorParams{
		MinSpeed:         cfg.Behavior.MinSpeed,
		MaxSpeed:         cfg.Behavior.MaxSpeed,
		MinStateDuration: cfg.Behavior.MinStateDuration,
		MaxStateDuration: cfg.Behavior.MaxStateDuration,
		Margins: Margins{
			Padding: cfg.Tank.Padding,
			Surface: cfg.Tank.SurfaceMargin,
			Floor:   cfg.Tank.FloorMargin,
		},
	}
}

// UpdateFish advances one fish by deltaMs and returns its next state.
// Only rng is advanced; f is passed by value and never shared.
//
// A tick performs at most one state toggle however long deltaMs is.
func UpdateFish(f components.Fish, deltaMs float64, b Bounds, p BehaviorParams, rng *rand.Rand) components.Fish {
	if deltaMs < 0 || math.IsNaN(deltaMs) {
		deltaMs = 0
	}

	f.StateTimer -= deltaMs
	if f.StateTimer <= 0 {
		f = toggleState(f, p, rng)
	}

	if f.State == components.Moving {
		dt := deltaMs / 1000
		f.X += f.Speed * math.Cos(f.Direction) * dt
		f.Y += f.Speed * math.Sin(f.Direction) * dt
	}

	f = reflect(f, b.Swimmable(p.Margins))
	f.Direction = normalizeHeading(f.Direction)
	return f
}

// toggleState flips idle and moving and re-seeds the timer.
func toggleState(f components.Fish, p BehaviorParams, rng *rand.Rand) components.Fish {
	if f.State == components.Moving {
		f.State = components.Idle
		f.Speed = 0
	} else {
		f.State = components.Moving
		f.Direction = rng.Float64() * twoPi
		f.Speed = uniform(rng, p.MinSpeed, p.MaxSpeed)
	}
	f.StateTimer = uniform(rng, p.MinStateDuration, p.MaxStateDuration)
	return f
}

// reflect clamps the fish into r and mirrors its heading off the wall it hit.
// Horizontal walls negate the heading, vertical walls mirror it around π/2.
func reflect(f components.Fish, r Rect) components.Fish {
	if f.X < r.MinX || f.X > r.MaxX {
		f.X = clampFloat(f.X, r.MinX, r.MaxX)
		f.Direction = math.Pi - f.Direction
	}
	if f.Y < r.MinY || f.Y > r.MaxY {
		f.Y = clampFloat(f.Y, r.MinY, r.MaxY)
		f.Direction = -f.Direction
	}
	return f
}

// UpdateAll advances a batch of fish and returns a new slice.
func UpdateAll(fish []components.Fish, deltaMs float64, b Bounds, p BehaviorParams, rng *rand.Rand) []components.Fish {
	next := make([]components.Fish, len(fish))
	for i, f := range fish {
		next[i] = UpdateFish(f, deltaMs, b, p, rng)
	}
	return next
}
