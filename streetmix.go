package streetmix

// Default unit constants. Street geometry is measured in feet; TileSize
// converts feet to screen pixels at scale 1.
const (
	// DefaultTileSize is the number of screen pixels per foot at scale 1.
	DefaultTileSize = 12.0

	// DefaultPadding is the buffer, in feet, reserved at both ends of a
	// segment so scattered sprites never render flush against its edges.
	DefaultPadding = 1.5
)

// Config holds the process-wide unit constants used by the scatter pipeline.
// The zero value selects the defaults above.
type Config struct {
	// TileSize is the number of screen pixels per foot at scale 1.
	TileSize float64

	// Padding is the buffer in feet reserved at both ends of a segment.
	Padding float64
}

// withDefaults returns c with zero fields replaced by the package defaults.
func (c Config) withDefaults() Config {
	if c.TileSize == 0 {
		c.TileSize = DefaultTileSize
	}
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	return c
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
