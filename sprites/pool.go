// Package sprites keeps an ECS world of fish visuals in step with the tank.
package sprites

import (
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/systems"
)

// BaseSize is the edge length in pixels of an unscaled fish sprite.
const BaseSize = 400

// ScaleFunc returns the drawing scale of a species.
type ScaleFunc func(components.Species) float64

// DefaultScale returns the built-in species scales.
func DefaultScale(s components.Species) float64 {
	switch s {
	case components.Pufferfish:
		return 0.15
	case components.Goldfish:
		return 0.18
	case components.Beta:
		return 0.14
	case components.Tetra:
		return 0.12
	}
	return 0.15
}

// Pool holds one sprite entity per fish, keyed by fish id.
type Pool struct {
	world *ecs.World

	mapper       *ecs.Map2[components.Sprite, components.Transform]
	filter       *ecs.Filter2[components.Sprite, components.Transform]
	spriteMap    *ecs.Map[components.Sprite]
	transformMap *ecs.Map[components.Transform]

	byID      map[string]ecs.Entity
	ids       []string
	nextOrder int
	scale     ScaleFunc

	// scratch for sorted iteration
	drawList []drawEntry
}

type drawEntry struct {
	entity ecs.Entity
	order  int
}

// NewPool creates an empty pool. A nil scale uses DefaultScale.
func NewPool(scale ScaleFunc) *Pool {
	if scale == nil {
		scale = DefaultScale
	}
	world := ecs.NewWorld()
	return &Pool{
		world:        world,
		mapper:       ecs.NewMap2[components.Sprite, components.Transform](world),
		filter:       ecs.NewFilter2[components.Sprite, components.Transform](world),
		spriteMap:    ecs.NewMap[components.Sprite](world),
		transformMap: ecs.NewMap[components.Transform](world),
		byID:         make(map[string]ecs.Entity),
		scale:        scale,
	}
}

// Sync reconciles the pool against fish and updates every transform.
// It returns how many sprites were created and destroyed.
func (p *Pool) Sync(fish []components.Fish, nowMs float64) (created, destroyed int) {
	want := make([]string, len(fish))
	for i, f := range fish {
		want[i] = f.ID
	}
	added, removed := systems.Reconcile(p.ids, want)

	for _, id := range removed {
		if e, ok := p.byID[id]; ok {
			p.world.RemoveEntity(e)
			delete(p.byID, id)
		}
	}

	byFish := make(map[string]components.Fish, len(fish))
	for _, f := range fish {
		byFish[f.ID] = f
	}
	for _, id := range added {
		f := byFish[id]
		sprite := components.Sprite{
			FishID:  f.ID,
			Species: f.Species,
			Scale:   p.scale(f.Species),
			Order:   p.nextOrder,
		}
		p.nextOrder++
		var tr components.Transform
		p.byID[id] = p.mapper.NewEntity(&sprite, &tr)
	}

	p.ids = p.ids[:0]
	for _, f := range fish {
		if _, seen := p.byID[f.ID]; !seen {
			continue
		}
		p.ids = append(p.ids, f.ID)
		*p.transformMap.Get(p.byID[f.ID]) = transformFor(f, nowMs)
	}
	// Duplicated ids collapse to one sprite
	p.ids = dedupe(p.ids)

	return len(added), len(removed)
}

// transformFor places a sprite on its fish with a gentle bob.
func transformFor(f components.Fish, nowMs float64) components.Transform {
	return components.Transform{
		X:          f.X,
		Y:          f.Y,
		Rotation:   math.Sin(nowMs/500+f.X) * 0.05,
		FacingLeft: math.Cos(f.Direction) < 0,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Len returns the number of live sprites.
func (p *Pool) Len() int { return len(p.byID) }

// Has reports whether a sprite exists for the fish id.
func (p *Pool) Has(id string) bool {
	_, ok := p.byID[id]
	return ok
}

// Transform returns the current transform of a fish's sprite.
func (p *Pool) Transform(id string) (components.Transform, bool) {
	e, ok := p.byID[id]
	if !ok {
		return components.Transform{}, false
	}
	return *p.transformMap.Get(e), true
}

// HitRadius is the click radius of a sprite.
func HitRadius(s *components.Sprite) float64 {
	return BaseSize * s.Scale / 2
}

// Pick returns the id of the top-most sprite under (x, y).
func (p *Pool) Pick(x, y float64) (string, bool) {
	best := -1
	bestID := ""
	query := p.filter.Query()
	for query.Next() {
		s, t := query.Get()
		r := HitRadius(s)
		dx, dy := x-t.X, y-t.Y
		if dx*dx+dy*dy <= r*r && s.Order > best {
			best = s.Order
			bestID = s.FishID
		}
	}
	return bestID, best >= 0
}

// Each calls fn for every sprite from bottom to top.
func (p *Pool) Each(fn func(s *components.Sprite, t *components.Transform)) {
	p.drawList = p.drawList[:0]
	query := p.filter.Query()
	for query.Next() {
		s, _ := query.Get()
		p.drawList = append(p.drawList, drawEntry{entity: query.Entity(), order: s.Order})
	}
	sort.Slice(p.drawList, func(i, j int) bool { return p.drawList[i].order < p.drawList[j].order })

	for _, d := range p.drawList {
		fn(p.spriteMap.Get(d.entity), p.transformMap.Get(d.entity))
	}
}
