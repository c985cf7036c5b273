package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/systems"
)

func testFish() []components.Fish {
	return []components.Fish{
		{ID: "a", Species: components.Goldfish, X: 200, Y: 150, Direction: 0, Speed: 40, State: components.Moving, StateTimer: 1000},
		{ID: "b", Species: components.Tetra, X: 500, Y: 300, Direction: 3, State: components.Idle, StateTimer: 2500},
	}
}

func TestWritePNG(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, testFish(), systems.Bounds{Width: 640, Height: 480}, StyleFromConfig(cfg)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("image size %dx%d, want 640x480", b.Dx(), b.Dy())
	}

	// Body centre of the goldfish is #f2862e
	r, g, b, _ := img.At(190, 150).RGBA()
	if r>>8 != 0xf2 || g>>8 != 0x86 || b>>8 != 0x2e {
		t.Errorf("goldfish body pixel = %02x%02x%02x", r>>8, g>>8, b>>8)
	}
	// Sand along the floor
	r, g, b, _ = img.At(10, 475).RGBA()
	if r>>8 != sand.R || g>>8 != sand.G || b>>8 != sand.B {
		t.Errorf("floor pixel = %02x%02x%02x, want sand", r>>8, g>>8, b>>8)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testFish()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv has %d lines, want header + 2", len(lines))
	}
	if lines[0] != "id,species,x,y,direction,speed,state,state_timer" {
		t.Errorf("header = %q", lines[0])
	}

	var records []FishRecord
	if err := gocsv.UnmarshalString(buf.String(), &records); err != nil {
		t.Fatal(err)
	}
	if records[1].ID != "b" || records[1].Species != "tetra" || records[1].State != "idle" {
		t.Errorf("second record = %+v", records[1])
	}
}
