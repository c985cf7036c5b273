// Package tank owns the canonical list of fish and its persistence.
package tank

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/storage"
	"github.com/pthm-cable/pixeltank/systems"
)

// SpawnParams controls where and how new fish appear.
type SpawnParams struct {
	Padding          float64
	FloorReserve     float64
	MinSpeed         float64
	MaxSpeed         float64
	MinStateDuration float64
	MaxStateDuration float64
}

// Options configures a Manager.
type Options struct {
	FishKey      string
	VisitedKey   string
	SaveInterval time.Duration
	Spawn        SpawnParams
	Bounds       systems.Bounds

	// Now is the clock used for save throttling; defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig builds manager options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	s := cfg.Spawn
	return Options{
		FishKey:      cfg.Persistence.FishKey,
		VisitedKey:   cfg.Persistence.VisitedKey,
		SaveInterval: time.Duration(cfg.Persistence.SaveIntervalMs * float64(time.Millisecond)),
		Spawn: SpawnParams{
			Padding:          s.Padding,
			FloorReserve:     s.FloorReserve,
			MinSpeed:         s.MinSpeed,
			MaxSpeed:         s.MaxSpeed,
			MinStateDuration: s.MinStateDuration,
			MaxStateDuration: s.MaxStateDuration,
		},
		Bounds: systems.Bounds{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)},
	}
}

// PersistStats counts store writes for telemetry.
type PersistStats struct {
	Saves      int
	SaveErrors int
}

// Manager holds the canonical fish list. It is not safe for concurrent use;
// the frame loop and input handlers share one goroutine.
type Manager struct {
	store   storage.KeyValueStore
	opts    Options
	rng     *rand.Rand
	limiter *rate.Limiter
	now     func() time.Time

	fish  []components.Fish
	dirty bool
	stats PersistStats
}

// Open creates a manager and loads any persisted fish from store.
// Unreadable data yields an empty tank and a warning; Open never fails.
func Open(store storage.KeyValueStore, opts Options, rng *rand.Rand) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	interval := opts.SaveInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	m := &Manager{
		store:   store,
		opts:    opts,
		rng:     rng,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		now:     now,
	}
	// The first throttled flush waits a full interval
	m.limiter.AllowN(now(), 1)

	fish, err := m.load()
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		slog.Warn("failed to load fish, starting with an empty tank", "key", opts.FishKey, "error", err)
	default:
		m.fish = fish
		slog.Info("loaded fish", "count", len(fish))
	}
	return m
}

func (m *Manager) load() ([]components.Fish, error) {
	raw, err := m.store.Get(m.opts.FishKey)
	if err != nil {
		return nil, err
	}
	return Decode([]byte(raw))
}

// Decode parses a persisted fish list. Records with unknown species,
// unknown states or missing ids are rejected as a whole.
func Decode(data []byte) ([]components.Fish, error) {
	var fish []components.Fish
	if err := json.Unmarshal(data, &fish); err != nil {
		return nil, fmt.Errorf("decode fish: %w", err)
	}
	for i, f := range fish {
		if f.ID == "" {
			return nil, fmt.Errorf("decode fish: record %d has no id", i)
		}
		if !f.Species.Valid() {
			return nil, fmt.Errorf("decode fish: record %d has no species", i)
		}
		if f.State == "" {
			return nil, fmt.Errorf("decode fish: record %d has no state", i)
		}
	}
	return fish, nil
}

// Encode serializes a fish list in the persisted format.
func Encode(fish []components.Fish) ([]byte, error) {
	if fish == nil {
		fish = []components.Fish{}
	}
	return json.Marshal(fish)
}

// Create adds a fish of a uniformly random species.
func (m *Manager) Create() (components.Fish, error) {
	s := components.AllSpecies[m.rng.Intn(len(components.AllSpecies))]
	return m.CreateSpecies(s)
}

// CreateSpecies adds a fish of the given species at a random spawn point
// and saves immediately.
func (m *Manager) CreateSpecies(s components.Species) (components.Fish, error) {
	if !s.Valid() {
		return components.Fish{}, fmt.Errorf("create fish: unknown species %q", s)
	}
	id, err := uuid.NewRandomFromReader(m.rng)
	if err != nil {
		return components.Fish{}, fmt.Errorf("create fish id: %w", err)
	}

	sp := m.opts.Spawn
	x, y := m.spawnPoint()
	f := components.Fish{
		ID:         id.String(),
		Species:    s,
		X:          x,
		Y:          y,
		Direction:  m.rng.Float64() * 2 * math.Pi,
		Speed:      sp.MinSpeed + m.rng.Float64()*(sp.MaxSpeed-sp.MinSpeed),
		State:      components.Moving,
		StateTimer: sp.MinStateDuration + m.rng.Float64()*(sp.MaxStateDuration-sp.MinStateDuration),
	}
	m.fish = append(m.fish, f)
	m.save()
	return f, nil
}

// spawnPoint picks a position inside the spawn area, falling back to the
// window centre on an axis too small for its padding.
func (m *Manager) spawnPoint() (float64, float64) {
	sp := m.opts.Spawn
	b := m.opts.Bounds
	x, y := b.Width/2, b.Height/2
	if span := b.Width - 2*sp.Padding; span >= 0 {
		x = sp.Padding + m.rng.Float64()*span
	}
	if span := b.Height - 2*sp.Padding - sp.FloorReserve; span >= 0 {
		y = sp.Padding + m.rng.Float64()*span
	}
	return x, y
}

// Remove deletes the fish with id and saves immediately.
// An unknown id is a no-op and reports false.
func (m *Manager) Remove(id string) (components.Fish, bool) {
	for i, f := range m.fish {
		if f.ID == id {
			m.fish = append(m.fish[:i:i], m.fish[i+1:]...)
			m.save()
			return f, true
		}
	}
	return components.Fish{}, false
}

// ReplaceAll swaps in the result of a simulation tick and marks the list
// for the next throttled Flush.
func (m *Manager) ReplaceAll(fish []components.Fish) {
	m.fish = append([]components.Fish(nil), fish...)
	m.dirty = true
}

// Fish returns a copy of the canonical list.
func (m *Manager) Fish() []components.Fish {
	return append([]components.Fish(nil), m.fish...)
}

// Len returns the number of fish.
func (m *Manager) Len() int { return len(m.fish) }

// Get looks up a fish by id.
func (m *Manager) Get(id string) (components.Fish, bool) {
	for _, f := range m.fish {
		if f.ID == id {
			return f, true
		}
	}
	return components.Fish{}, false
}

// Resize updates the window size used for spawning.
func (m *Manager) Resize(width, height float64) {
	m.opts.Bounds = systems.Bounds{Width: width, Height: height}
}

// Bounds returns the current window size.
func (m *Manager) Bounds() systems.Bounds { return m.opts.Bounds }

// Flush writes pending changes if the save interval has elapsed since the
// last throttled write. It reports whether a write was attempted.
func (m *Manager) Flush() bool {
	if !m.dirty {
		return false
	}
	if !m.limiter.AllowN(m.now(), 1) {
		return false
	}
	m.save()
	return true
}

// Close writes the current list regardless of throttling.
func (m *Manager) Close() {
	m.save()
}

// Stats returns persistence counters.
func (m *Manager) Stats() PersistStats { return m.stats }

// FirstVisit reports whether the onboarding flag was unset and sets it.
func (m *Manager) FirstVisit() bool {
	if m.opts.VisitedKey == "" {
		return false
	}
	if v, err := m.store.Get(m.opts.VisitedKey); err == nil && v == "true" {
		return false
	}
	if err := m.store.Set(m.opts.VisitedKey, "true"); err != nil {
		slog.Warn("failed to store visited flag", "error", err)
	}
	return true
}

// save writes the list, logging and swallowing failures.
func (m *Manager) save() {
	data, err := Encode(m.fish)
	if err == nil {
		err = m.store.Set(m.opts.FishKey, string(data))
	}
	if err != nil {
		m.stats.SaveErrors++
		slog.Warn("failed to save fish", "count", len(m.fish), "error", err)
		return
	}
	m.stats.Saves++
	m.dirty = false
}
