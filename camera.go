package streetmix

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is a horizontal view into a street. It pans along the street axis,
// optionally clamped to the street extent, with tweened scroll animation.
type Camera struct {
	// X is the street-space pixel position the camera centers on.
	X float64

	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in).
	Zoom float64

	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible span stays
	// within [BoundsMin, BoundsMax].
	BoundsEnabled bool
	// BoundsMin and BoundsMax are the street-space pixel extent the camera
	// is clamped to when BoundsEnabled is true.
	BoundsMin, BoundsMax float64

	scrollTween *gween.Tween
}

// NewCamera creates a Camera centered at 0 with the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// ScrollTo animates the camera to the given street position over duration
// seconds. A new call replaces any scroll in progress.
func (c *Camera) ScrollTo(x float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = gween.New(float32(c.X), float32(x), duration, easeFn)
}

// Scrolling reports whether a scroll animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables clamping to the given street extent in pixels.
func (c *Camera) SetBounds(min, max float64) {
	c.BoundsEnabled = true
	c.BoundsMin = min
	c.BoundsMax = max
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances the scroll animation by dt seconds and applies bounds
// clamping. Call once per frame.
func (c *Camera) Update(dt float32) {
	if c.scrollTween != nil {
		val, done := c.scrollTween.Update(dt)
		c.X = float64(val)
		if done {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts the camera position so the visible span stays
// within [BoundsMin, BoundsMax].
func (c *Camera) clampToBounds() {
	half := c.Viewport.Width / (2 * c.Zoom)

	min := c.BoundsMin + half
	max := c.BoundsMax - half

	// If the street is narrower than the visible span, center on it.
	if min > max {
		c.X = (c.BoundsMin + c.BoundsMax) / 2
		return
	}
	c.X = math.Max(min, math.Min(c.X, max))
}

// StreetToScreen converts a street-space pixel X to screen space.
func (c *Camera) StreetToScreen(x float64) float64 {
	return (x-c.X)*c.Zoom + c.Viewport.X + c.Viewport.Width/2
}

// ScreenToStreet converts a screen-space X back to street space.
func (c *Camera) ScreenToStreet(sx float64) float64 {
	return (sx-c.Viewport.X-c.Viewport.Width/2)/c.Zoom + c.X
}

// VisibleSpan returns the street-space pixel range [min, max) currently
// visible through the viewport.
func (c *Camera) VisibleSpan() (min, max float64) {
	half := c.Viewport.Width / (2 * c.Zoom)
	return c.X - half, c.X + half
}
