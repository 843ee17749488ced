package viewer

import (
	"math"

	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// Camera maps between world coordinates and screen pixels for a pannable,
// zoomable 2D viewport.
type Camera struct {
	Center geometry.Vector2 // world point shown at the viewport center
	Scale  float64          // screen pixels per world unit

	width  float64 // viewport size in pixels
	height float64
}

// NewCamera creates a camera fitted to show the given world bounds.
func NewCamera(bounds geometry.Rect) *Camera {
	c := &Camera{
		Center: geometry.NewVector2(0, 0),
		Scale:  1,
		width:  800,
		height: 600,
	}
	if !bounds.IsEmpty() {
		c.Fit(bounds)
	}
	return c
}

// Fit centers the camera on bounds and chooses a scale that shows all of it
// with a small margin.
func (c *Camera) Fit(bounds geometry.Rect) {
	if bounds.IsEmpty() {
		return
	}
	c.Center = bounds.Center()
	size := bounds.Size()
	if size.X <= 0 && size.Y <= 0 {
		c.Scale = 1
		return
	}
	sx := c.width / math.Max(size.X, 1e-9)
	sy := c.height / math.Max(size.Y, 1e-9)
	c.Scale = math.Min(sx, sy) * 0.9
}

// SetViewportSize updates the pixel dimensions of the viewport.
func (c *Camera) SetViewportSize(width, height float64) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// ViewportBounds returns the world rectangle currently visible.
func (c *Camera) ViewportBounds() geometry.Rect {
	hw := c.width / (2 * c.Scale)
	hh := c.height / (2 * c.Scale)
	return geometry.RectAround(c.Center, hw, hh)
}

// Pan shifts the view by a screen-space delta in pixels.
func (c *Camera) Pan(dxPx, dyPx float64) {
	c.Center = c.Center.Add(geometry.NewVector2(dxPx/c.Scale, dyPx/c.Scale))
}

// ZoomAt scales the view by factor, keeping the world point under the given
// screen position fixed.
func (c *Camera) ZoomAt(factor float64, screenX, screenY float64) {
	if factor <= 0 {
		return
	}
	anchor := c.Unproject(screenX, screenY)
	c.Scale *= factor
	if c.Scale < 1e-6 {
		c.Scale = 1e-6
	}
	if c.Scale > 1e6 {
		c.Scale = 1e6
	}
	// Keep the anchor under the cursor.
	after := c.Unproject(screenX, screenY)
	c.Center = c.Center.Add(anchor.Sub(after))
}

// Project converts a world point to screen pixel coordinates.
func (c *Camera) Project(world geometry.Vector2) (float32, float32) {
	x := (world.X-c.Center.X)*c.Scale + c.width/2
	y := (world.Y-c.Center.Y)*c.Scale + c.height/2
	return float32(x), float32(y)
}

// Unproject converts screen pixel coordinates back to a world point.
func (c *Camera) Unproject(screenX, screenY float64) geometry.Vector2 {
	return geometry.Vector2{
		X: (screenX-c.width/2)/c.Scale + c.Center.X,
		Y: (screenY-c.height/2)/c.Scale + c.Center.Y,
	}
}
