// Package export renders a tank to a PNG postcard and dumps its fish as CSV.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/sprites"
	"github.com/pthm-cable/pixeltank/systems"
)

// Style picks per-species colors and sizes.
type Style struct {
	Color func(components.Species) string // hex RGB
	Scale func(components.Species) float64
}

// StyleFromConfig reads species presentation from the configuration.
func StyleFromConfig(cfg *config.Config) Style {
	return Style{
		Color: func(s components.Species) string { return cfg.SpeciesByName(string(s)).Color },
		Scale: func(s components.Species) float64 { return cfg.SpeciesByName(string(s)).Scale },
	}
}

var (
	waterTop    = color.RGBA{96, 178, 222, 255}
	waterBottom = color.RGBA{28, 86, 140, 255}
	sand        = color.RGBA{222, 196, 140, 255}
)

// sandHeight is the strip of sand drawn along the tank floor.
const sandHeight = 60

// Postcard draws the tank with every fish at its current position.
func Postcard(fish []components.Fish, b systems.Bounds, style Style) image.Image {
	w, h := int(math.Max(1, b.Width)), int(math.Max(1, b.Height))
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, waterTop)
	grad.AddColorStop(1, waterBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	dc.SetColor(sand)
	dc.DrawRectangle(0, float64(h)-sandHeight, float64(w), sandHeight)
	dc.Fill()

	for _, f := range fish {
		drawFish(dc, f, style)
	}
	return dc.Image()
}

// drawFish draws an oval body with a tail on the side away from the heading.
func drawFish(dc *gg.Context, f components.Fish, style Style) {
	size := sprites.BaseSize * style.Scale(f.Species)
	rx, ry := size/2, size/3

	dc.Push()
	dc.Translate(f.X, f.Y)
	if math.Cos(f.Direction) < 0 {
		dc.Scale(-1, 1)
	}
	dc.SetHexColor(style.Color(f.Species))

	dc.MoveTo(-rx*0.8, 0)
	dc.LineTo(-rx*1.4, -ry*0.8)
	dc.LineTo(-rx*1.4, ry*0.8)
	dc.ClosePath()
	dc.Fill()

	dc.DrawEllipse(0, 0, rx, ry)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.DrawCircle(rx*0.5, -ry*0.2, math.Max(1, size/20))
	dc.Fill()
	dc.Pop()
}

// WritePNG encodes the postcard as PNG.
func WritePNG(w io.Writer, fish []components.Fish, b systems.Bounds, style Style) error {
	dc := gg.NewContextForImage(Postcard(fish, b, style))
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// FishRecord is one CSV row.
type FishRecord struct {
	ID         string  `csv:"id"`
	Species    string  `csv:"species"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Direction  float64 `csv:"direction"`
	Speed      float64 `csv:"speed"`
	State      string  `csv:"state"`
	StateTimer float64 `csv:"state_timer"`
}

// WriteCSV writes one row per fish with a header.
func WriteCSV(w io.Writer, fish []components.Fish) error {
	records := make([]FishRecord, len(fish))
	for i, f := range fish {
		records[i] = FishRecord{
			ID:         f.ID,
			Species:    string(f.Species),
			X:          f.X,
			Y:          f.Y,
			Direction:  f.Direction,
			Speed:      f.Speed,
			State:      string(f.State),
			StateTimer: f.StateTimer,
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
