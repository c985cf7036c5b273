package renderer

import (
	"math"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/sprites"
)

// FishRenderer draws the sprite pool as stylised fish.
type FishRenderer struct {
	colors map[components.Species]rl.Color
}

// NewFishRenderer builds the species palette from the configuration.
func NewFishRenderer(cfg *config.Config) *FishRenderer {
	r := &FishRenderer{colors: make(map[components.Species]rl.Color)}
	for _, s := range components.AllSpecies {
		r.colors[s] = ParseHexColor(cfg.SpeciesByName(string(s)).Color)
	}
	return r
}

// ParseHexColor turns "#rrggbb" into an opaque color; malformed input is gray.
func ParseHexColor(hex string) rl.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return rl.Gray
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Gray
	}
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Draw renders every sprite in draw order.
func (r *FishRenderer) Draw(pool *sprites.Pool) {
	pool.Each(func(s *components.Sprite, t *components.Transform) {
		r.drawFish(s, t)
	})
}

func (r *FishRenderer) drawFish(s *components.Sprite, t *components.Transform) {
	color, ok := r.colors[s.Species]
	if !ok {
		color = rl.Gray
	}
	size := float32(sprites.BaseSize * s.Scale)
	rx := size * 0.5
	ry := size * 0.3

	// Local frame: nose points along +x, flipped when facing left.
	flip := float32(1)
	if t.FacingLeft {
		flip = -1
	}
	sin, cos := math.Sincos(t.Rotation)
	toScreen := func(lx, ly float32) rl.Vector2 {
		lx *= flip
		return rl.Vector2{
			X: float32(t.X) + lx*float32(cos) - ly*float32(sin),
			Y: float32(t.Y) + lx*float32(sin) + ly*float32(cos),
		}
	}

	tailBase := toScreen(-rx*0.8, 0)
	tailTop := toScreen(-rx*1.5, -ry)
	tailBottom := toScreen(-rx*1.5, ry)
	drawTriangle(tailBase, tailTop, tailBottom, darken(color, 0.8))

	rl.DrawEllipse(int32(t.X), int32(t.Y), rx, ry, color)

	finTip := toScreen(-rx*0.1, -ry*1.5)
	drawTriangle(toScreen(-rx*0.4, -ry*0.7), finTip, toScreen(rx*0.2, -ry*0.8), darken(color, 0.85))

	eye := toScreen(rx*0.55, -ry*0.2)
	rl.DrawCircleV(eye, ry*0.22, rl.RayWhite)
	rl.DrawCircleV(eye, ry*0.11, rl.Black)
}

// drawTriangle orders vertices counter-clockwise on screen so raylib
// does not cull the triangle.
func drawTriangle(a, b, c rl.Vector2, color rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, color)
}

func darken(c rl.Color, f float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
