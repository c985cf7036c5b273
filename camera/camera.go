// Package camera maps tank coordinates onto a viewport of a different size.
package camera

// Camera scales the whole tank into a viewport. The tank is bounded, so
// there is no panning; zoom only stretches or letterboxes.
type Camera struct {
	// World dimensions (tank size)
	WorldW, WorldH float64

	// Viewport dimensions (screen size in viewport units)
	ViewportW, ViewportH float64

	// Uniform keeps the aspect ratio and centres the tank with borders.
	Uniform bool

	scaleX, scaleY   float64
	offsetX, offsetY float64
}

// New creates a camera fitting a worldW x worldH tank into the viewport.
func New(viewportW, viewportH, worldW, worldH float64, uniform bool) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH, Uniform: uniform}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates viewport dimensions and recomputes the mapping.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}

// SetWorld updates the tank dimensions.
func (c *Camera) SetWorld(worldW, worldH float64) {
	c.WorldW = worldW
	c.WorldH = worldH
	c.fit()
}

func (c *Camera) fit() {
	c.scaleX, c.scaleY = 1, 1
	if c.WorldW > 0 {
		c.scaleX = c.ViewportW / c.WorldW
	}
	if c.WorldH > 0 {
		c.scaleY = c.ViewportH / c.WorldH
	}
	c.offsetX, c.offsetY = 0, 0
	if c.Uniform {
		s := min(c.scaleX, c.scaleY)
		c.scaleX, c.scaleY = s, s
		c.offsetX = (c.ViewportW - c.WorldW*s) / 2
		c.offsetY = (c.ViewportH - c.WorldH*s) / 2
	}
}

// Scale returns the world-to-screen scale on each axis.
func (c *Camera) Scale() (sx, sy float64) { return c.scaleX, c.scaleY }

// WorldToScreen converts tank coordinates to viewport coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.offsetX + wx*c.scaleX, c.offsetY + wy*c.scaleY
}

// ScreenToWorld converts viewport coordinates to tank coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	if c.scaleX != 0 {
		wx = (sx - c.offsetX) / c.scaleX
	}
	if c.scaleY != 0 {
		wy = (sy - c.offsetY) / c.scaleY
	}
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with the given world
// radius overlaps the viewport.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	rx, ry := radius*c.scaleX, radius*c.scaleY
	return sx+rx >= 0 && sx-rx <= c.ViewportW && sy+ry >= 0 && sy-ry <= c.ViewportH
}
