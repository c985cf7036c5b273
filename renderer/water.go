// Package renderer draws the tank scene with raylib.
package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type bubble struct {
	x      float32 // fraction of width
	phase  float32 // fraction of height
	speed  float32 // px/s
	radius float32
	wobble float32
}

// WaterBackground renders the gradient water, light bands, sand and bubbles.
type WaterBackground struct {
	width      float32
	height     float32
	sandHeight float32

	top, bottom rl.Color
	sand        rl.Color
	bubbles     []bubble
}

// NewWaterBackground creates a background for a width x height window.
// sandHeight is the floor strip left for sand.
func NewWaterBackground(width, height int32, sandHeight float32, rng *rand.Rand) *WaterBackground {
	w := &WaterBackground{
		width:      float32(width),
		height:     float32(height),
		sandHeight: sandHeight,
		top:        rl.Color{R: 76, G: 166, B: 214, A: 255},
		bottom:     rl.Color{R: 14, G: 58, B: 110, A: 255},
		sand:       rl.Color{R: 222, G: 196, B: 140, A: 255},
	}
	for i := 0; i < 24; i++ {
		w.bubbles = append(w.bubbles, bubble{
			x:      rng.Float32(),
			phase:  rng.Float32(),
			speed:  20 + rng.Float32()*40,
			radius: 2 + rng.Float32()*4,
			wobble: rng.Float32() * 2 * math.Pi,
		})
	}
	return w
}

// Resize updates the window dimensions.
func (w *WaterBackground) Resize(width, height float32) {
	w.width = width
	w.height = height
}

// Draw renders the background at time seconds.
func (w *WaterBackground) Draw(time float32) {
	width := int32(w.width)
	height := int32(w.height)
	rl.DrawRectangleGradientV(0, 0, width, height, w.top, w.bottom)

	// Light bands drift slowly across the surface.
	for i := 0; i < 5; i++ {
		fi := float32(i)
		cx := w.width * (0.1 + 0.2*fi + 0.04*float32(math.Sin(float64(time*0.3+fi))))
		bandW := w.width * 0.06
		light := rl.Color{R: 255, G: 255, B: 255, A: 22}
		fade := rl.Color{R: 255, G: 255, B: 255, A: 0}
		rl.DrawRectangleGradientV(int32(cx-bandW/2), 0, int32(bandW), height*2/3, light, fade)
	}

	w.drawBubbles(time)

	sandTop := w.height - w.sandHeight
	if w.sandHeight > 0 && sandTop > 0 {
		rl.DrawRectangle(0, int32(sandTop), width, int32(w.sandHeight), w.sand)
		rl.DrawRectangleGradientV(0, int32(sandTop)-6, width, 6, rl.Color{R: 222, G: 196, B: 140, A: 0}, w.sand)
	}
}

func (w *WaterBackground) drawBubbles(time float32) {
	travel := w.height - w.sandHeight
	if travel <= 0 {
		return
	}
	for _, b := range w.bubbles {
		dist := float32(math.Mod(float64(b.phase*travel+b.speed*time), float64(travel)))
		y := travel - dist
		x := b.x*w.width + 6*float32(math.Sin(float64(time*2+b.wobble)))
		alpha := uint8(40 + 120*(y/travel))
		rl.DrawCircleLines(int32(x), int32(y), b.radius, rl.Color{R: 230, G: 245, B: 255, A: alpha})
	}
}
