package tank

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock { return &fakeClock{t: time.Unix(1700000000, 0)} }

func testOptions(t *testing.T, clock *fakeClock) Options {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	opts := OptionsFromConfig(cfg)
	opts.Bounds.Width, opts.Bounds.Height = 800, 600
	if clock != nil {
		opts.Now = clock.Now
	}
	return opts
}

func TestCreate(t *testing.T) {
	store := storage.NewMemoryStore()
	opts := testOptions(t, nil)
	m := Open(store, opts, rand.New(rand.NewSource(1)))

	f, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID == "" || !f.Species.Valid() {
		t.Errorf("fish has id %q species %q", f.ID, f.Species)
	}
	if f.State != components.Moving {
		t.Errorf("state = %v, want moving", f.State)
	}
	if f.Speed < 30 || f.Speed > 80 {
		t.Errorf("speed = %v, want in [30, 80]", f.Speed)
	}
	if f.StateTimer < 1000 || f.StateTimer > 4000 {
		t.Errorf("stateTimer = %v, want in [1000, 4000]", f.StateTimer)
	}
	if f.Direction < 0 || f.Direction >= 2*math.Pi {
		t.Errorf("direction = %v", f.Direction)
	}
	if f.X < 100 || f.X > 700 || f.Y < 100 || f.Y > 400 {
		t.Errorf("spawn point (%v,%v) outside spawn area", f.X, f.Y)
	}
	if store.Writes() != 1 {
		t.Errorf("writes = %d, want an immediate save", store.Writes())
	}
	if m.Len() != 1 {
		t.Errorf("len = %d, want 1", m.Len())
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	m := Open(storage.NewMemoryStore(), testOptions(t, nil), rand.New(rand.NewSource(2)))
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		f, err := m.Create()
		if err != nil {
			t.Fatal(err)
		}
		if seen[f.ID] {
			t.Fatalf("duplicate id %s", f.ID)
		}
		seen[f.ID] = true
	}
}

func TestCreateSpeciesRejectsUnknown(t *testing.T) {
	m := Open(storage.NewMemoryStore(), testOptions(t, nil), rand.New(rand.NewSource(3)))
	if _, err := m.CreateSpecies("shark"); err == nil {
		t.Error("CreateSpecies(shark) succeeded")
	}
	if m.Len() != 0 {
		t.Errorf("len = %d after rejected create", m.Len())
	}
}

func TestRemoveUnknownID(t *testing.T) {
	store := storage.NewMemoryStore()
	m := Open(store, testOptions(t, nil), rand.New(rand.NewSource(4)))
	var ids []string
	for i := 0; i < 3; i++ {
		f, _ := m.Create()
		ids = append(ids, f.ID)
	}
	writes := store.Writes()

	if _, ok := m.Remove("not-a-fish"); ok {
		t.Error("Remove of unknown id reported true")
	}

	got := m.Fish()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, f := range got {
		if f.ID != ids[i] {
			t.Errorf("fish[%d] = %s, want %s", i, f.ID, ids[i])
		}
	}
	if store.Writes() != writes {
		t.Error("no-op remove wrote to the store")
	}
}

func TestRemove(t *testing.T) {
	store := storage.NewMemoryStore()
	m := Open(store, testOptions(t, nil), rand.New(rand.NewSource(5)))
	a, _ := m.Create()
	b, _ := m.Create()
	c, _ := m.Create()
	writes := store.Writes()

	removed, ok := m.Remove(b.ID)
	if !ok || removed.ID != b.ID {
		t.Fatalf("Remove(%s) = %v, %v", b.ID, removed.ID, ok)
	}
	got := m.Fish()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Errorf("remaining = %v", got)
	}
	if store.Writes() != writes+1 {
		t.Error("remove did not save immediately")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.json")
	store, err := storage.OpenFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions(t, nil)
	m := Open(store, opts, rand.New(rand.NewSource(6)))
	for i := 0; i < 4; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatal(err)
		}
	}
	want := m.Fish()

	reopened, err := storage.OpenFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	got := Open(reopened, opts, rand.New(rand.NewSource(7))).Fish()

	if len(got) != len(want) {
		t.Fatalf("loaded %d fish, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Species != want[i].Species {
			t.Errorf("fish[%d] = %s/%s, want %s/%s", i, got[i].ID, got[i].Species, want[i].ID, want[i].Species)
		}
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("fish[%d] at (%v,%v), want (%v,%v)", i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
	}
}

func TestOpenFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{oops"},
		{"object instead of array", `{"id":"a"}`},
		{"unknown species", `[{"id":"a","species":"shark","x":1,"y":2,"direction":0,"speed":0,"state":"idle","stateTimer":100}]`},
		{"unknown state", `[{"id":"a","species":"goldfish","x":1,"y":2,"direction":0,"speed":0,"state":"sleeping","stateTimer":100}]`},
		{"missing id", `[{"species":"goldfish","x":1,"y":2,"direction":0,"speed":0,"state":"idle","stateTimer":100}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			opts := testOptions(t, nil)
			if err := store.Set(opts.FishKey, tt.data); err != nil {
				t.Fatal(err)
			}
			m := Open(store, opts, rand.New(rand.NewSource(8)))
			if m.Len() != 0 {
				t.Errorf("len = %d, want empty tank", m.Len())
			}
		})
	}
}

func TestOpenLoadsValidRecord(t *testing.T) {
	store := storage.NewMemoryStore()
	opts := testOptions(t, nil)
	data := `[{"id":"a","species":"tetra","x":150,"y":220,"direction":1.5,"speed":0,"state":"idle","stateTimer":1200}]`
	if err := store.Set(opts.FishKey, data); err != nil {
		t.Fatal(err)
	}

	m := Open(store, opts, rand.New(rand.NewSource(9)))
	f, ok := m.Get("a")
	if !ok {
		t.Fatal("fish a not loaded")
	}
	if f.Species != components.Tetra || f.State != components.Idle || f.X != 150 {
		t.Errorf("loaded %+v", f)
	}
}

func TestFlushThrottled(t *testing.T) {
	clock := newClock()
	store := storage.NewMemoryStore()
	m := Open(store, testOptions(t, clock), rand.New(rand.NewSource(10)))

	if m.Flush() {
		t.Error("Flush with nothing dirty wrote")
	}

	m.ReplaceAll([]components.Fish{{ID: "a", Species: components.Beta, State: components.Idle}})
	if m.Flush() {
		t.Error("Flush right after open wrote")
	}
	clock.Advance(4 * time.Second)
	if m.Flush() {
		t.Error("Flush before the interval wrote")
	}
	clock.Advance(1100 * time.Millisecond)
	if !m.Flush() {
		t.Fatal("Flush after the interval did not write")
	}
	if store.Writes() != 1 {
		t.Errorf("writes = %d, want 1", store.Writes())
	}

	m.ReplaceAll(m.Fish())
	clock.Advance(time.Second)
	if m.Flush() {
		t.Error("second Flush inside the interval wrote")
	}
	clock.Advance(5 * time.Second)
	if !m.Flush() {
		t.Error("second Flush after the interval did not write")
	}
}

func TestCloseForcesSave(t *testing.T) {
	clock := newClock()
	store := storage.NewMemoryStore()
	m := Open(store, testOptions(t, clock), rand.New(rand.NewSource(11)))
	m.ReplaceAll([]components.Fish{{ID: "a", Species: components.Beta, State: components.Idle}})

	m.Close()
	if store.Writes() != 1 {
		t.Errorf("writes = %d, want 1", store.Writes())
	}
}

func TestWriteFailureSwallowed(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites = true
	m := Open(store, testOptions(t, nil), rand.New(rand.NewSource(12)))

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create with failing store: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("len = %d, want 1", m.Len())
	}
	if s := m.Stats(); s.SaveErrors != 1 || s.Saves != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestFirstVisit(t *testing.T) {
	store := storage.NewMemoryStore()
	opts := testOptions(t, nil)
	m := Open(store, opts, rand.New(rand.NewSource(13)))

	if !m.FirstVisit() {
		t.Error("first call should report a first visit")
	}
	if m.FirstVisit() {
		t.Error("second call should not report a first visit")
	}
	if v, _ := store.Get(opts.VisitedKey); v != "true" {
		t.Errorf("visited flag = %q, want true", v)
	}
}

func TestSpawnOnTinyWindow(t *testing.T) {
	opts := testOptions(t, nil)
	m := Open(storage.NewMemoryStore(), opts, rand.New(rand.NewSource(14)))
	m.Resize(120, 150)

	f, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if f.X != 60 || f.Y != 75 {
		t.Errorf("spawn = (%v,%v), want window centre (60,75)", f.X, f.Y)
	}
}
