package sprites

import (
	"math"
	"testing"

	"github.com/pthm-cable/pixeltank/components"
)

func fishAt(id string, x, y, dir float64) components.Fish {
	return components.Fish{ID: id, Species: components.Goldfish, X: x, Y: y, Direction: dir, State: components.Moving, Speed: 30}
}

func TestSyncTracksIDs(t *testing.T) {
	p := NewPool(nil)

	created, destroyed := p.Sync([]components.Fish{fishAt("a", 100, 100, 0), fishAt("b", 200, 200, 0)}, 0)
	if created != 2 || destroyed != 0 {
		t.Errorf("first sync created %d destroyed %d", created, destroyed)
	}

	created, destroyed = p.Sync([]components.Fish{fishAt("b", 200, 200, 0), fishAt("c", 300, 300, 0)}, 16)
	if created != 1 || destroyed != 1 {
		t.Errorf("second sync created %d destroyed %d", created, destroyed)
	}
	if p.Len() != 2 || !p.Has("b") || !p.Has("c") || p.Has("a") {
		t.Errorf("pool holds wrong ids: len %d", p.Len())
	}

	p.Sync(nil, 32)
	if p.Len() != 0 {
		t.Errorf("len = %d after syncing an empty tank", p.Len())
	}
}

func TestSyncFacing(t *testing.T) {
	tests := []struct {
		name string
		dir  float64
		left bool
	}{
		{"right", 0, false},
		{"left", math.Pi, true},
		{"down-left", 2, true},
		{"down", math.Pi / 2, false},
		{"up-right", 5.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(nil)
			p.Sync([]components.Fish{fishAt("a", 100, 100, tt.dir)}, 0)
			tr, ok := p.Transform("a")
			if !ok {
				t.Fatal("no transform")
			}
			if tr.FacingLeft != tt.left {
				t.Errorf("FacingLeft = %v, want %v", tr.FacingLeft, tt.left)
			}
		})
	}
}

func TestSyncFollowsPosition(t *testing.T) {
	p := NewPool(nil)
	p.Sync([]components.Fish{fishAt("a", 100, 100, 0)}, 0)
	p.Sync([]components.Fish{fishAt("a", 140, 90, 0)}, 1000)

	tr, _ := p.Transform("a")
	if tr.X != 140 || tr.Y != 90 {
		t.Errorf("transform at (%v,%v), want (140,90)", tr.X, tr.Y)
	}
	want := math.Sin(1000.0/500+140) * 0.05
	if math.Abs(tr.Rotation-want) > 1e-12 {
		t.Errorf("rotation = %v, want %v", tr.Rotation, want)
	}
	if math.Abs(tr.Rotation) > 0.05 {
		t.Errorf("rotation %v exceeds bob amplitude", tr.Rotation)
	}
}

func TestPickTopMost(t *testing.T) {
	p := NewPool(nil)
	p.Sync([]components.Fish{fishAt("under", 100, 100, 0), fishAt("over", 110, 100, 0)}, 0)

	id, ok := p.Pick(105, 100)
	if !ok || id != "over" {
		t.Errorf("Pick = %q, %v, want over", id, ok)
	}
	if _, ok := p.Pick(600, 600); ok {
		t.Error("Pick on empty water hit a fish")
	}
}

func TestEachDrawOrder(t *testing.T) {
	p := NewPool(nil)
	p.Sync([]components.Fish{fishAt("a", 1, 1, 0), fishAt("b", 2, 2, 0), fishAt("c", 3, 3, 0)}, 0)
	p.Sync([]components.Fish{fishAt("a", 1, 1, 0), fishAt("c", 3, 3, 0), fishAt("d", 4, 4, 0)}, 0)

	var got []string
	p.Each(func(s *components.Sprite, _ *components.Transform) {
		got = append(got, s.FishID)
	})
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Each visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Each order = %v, want %v", got, want)
			break
		}
	}
}

func TestSpeciesScale(t *testing.T) {
	p := NewPool(nil)
	f := fishAt("t", 1, 1, 0)
	f.Species = components.Tetra
	p.Sync([]components.Fish{f}, 0)

	var scale float64
	p.Each(func(s *components.Sprite, _ *components.Transform) { scale = s.Scale })
	if scale != 0.12 {
		t.Errorf("tetra scale = %v, want 0.12", scale)
	}
}
