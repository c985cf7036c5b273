package systems

// Bounds represents the size of the tank window.
type Bounds struct {
	Width, Height float64
}

// Margins shrink the window into the swimmable area.
type Margins struct {
	Padding float64 // all four sides
	Surface float64 // extra room below the water line
	Floor   float64 // extra room above the sand
}

// Rect is an axis-aligned swimmable area.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Swimmable returns the area a fish may occupy.
// When the window is smaller than its margins an axis collapses to its centre line.
func (b Bounds) Swimmable(m Margins) Rect {
	r := Rect{
		MinX: m.Padding,
		MaxX: b.Width - m.Padding,
		MinY: m.Padding + m.Surface,
		MaxY: b.Height - m.Padding - m.Floor,
	}
	if r.MinX > r.MaxX {
		c := b.Width / 2
		r.MinX, r.MaxX = c, c
	}
	if r.MinY > r.MaxY {
		c := (r.MinY + r.MaxY) / 2
		r.MinY, r.MaxY = c, c
	}
	return r
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}
