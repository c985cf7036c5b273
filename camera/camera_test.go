package camera

import (
	"math"
	"testing"
)

func TestStretchFit(t *testing.T) {
	cam := New(128, 36, 1280, 720, false)

	sx, sy := cam.WorldToScreen(640, 360)
	if math.Abs(sx-64) > 1e-9 || math.Abs(sy-18) > 1e-9 {
		t.Errorf("tank centre -> (%v, %v), want (64, 18)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(1280, 720)
	if sx != 128 || sy != 36 {
		t.Errorf("tank corner -> (%v, %v), want (128, 36)", sx, sy)
	}
}

func TestUniformLetterbox(t *testing.T) {
	cam := New(1000, 1000, 1280, 720, true)

	sx, sy := cam.Scale()
	if sx != sy {
		t.Fatalf("uniform scale differs per axis: %v, %v", sx, sy)
	}
	x, y := cam.WorldToScreen(0, 0)
	if x != 0 || y <= 0 {
		t.Errorf("tank origin -> (%v, %v), want a vertical border", x, y)
	}
	_, cy := cam.WorldToScreen(640, 360)
	if math.Abs(cy-500) > 1e-9 {
		t.Errorf("tank centre y -> %v, want 500", cy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	for _, uniform := range []bool{false, true} {
		cam := New(200, 60, 1280, 720, uniform)
		testCases := []struct{ sx, sy float64 }{
			{100, 30},
			{3, 4},
			{199, 59},
		}
		for _, tc := range testCases {
			wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
			sx, sy := cam.WorldToScreen(wx, wy)
			if math.Abs(sx-tc.sx) > 1e-9 || math.Abs(sy-tc.sy) > 1e-9 {
				t.Errorf("uniform=%v roundtrip (%v,%v) -> (%v,%v) -> (%v,%v)",
					uniform, tc.sx, tc.sy, wx, wy, sx, sy)
			}
		}
	}
}

func TestResize(t *testing.T) {
	cam := New(100, 100, 1000, 1000, false)
	cam.Resize(50, 20)
	sx, sy := cam.Scale()
	if sx != 0.05 || sy != 0.02 {
		t.Errorf("scale after resize = (%v, %v)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(100, 50, 1000, 500, false)
	if !cam.IsVisible(500, 250, 10) {
		t.Error("centre not visible")
	}
	if cam.IsVisible(-200, 250, 10) {
		t.Error("point far left reported visible")
	}
	if !cam.IsVisible(-5, 250, 10) {
		t.Error("circle overlapping left edge not visible")
	}
}

func TestDegenerateWorld(t *testing.T) {
	cam := New(100, 50, 0, 0, false)
	wx, wy := cam.ScreenToWorld(10, 10)
	if math.IsNaN(wx) || math.IsNaN(wy) || math.IsInf(wx, 0) {
		t.Errorf("ScreenToWorld on empty world = (%v, %v)", wx, wy)
	}
}
