package streetmix

import (
	"errors"
	"fmt"
)

// Placement errors. All are reported before any placement is produced;
// there is no partial result on failure.
var (
	// ErrInvalidPool indicates an empty pool or a pool entry with a
	// non-positive width.
	ErrInvalidPool = errors.New("invalid pool")

	// ErrInvalidSpacing indicates MaxSpacing < MinSpacing, a negative
	// MinSpacing, or a non-positive target width.
	ErrInvalidSpacing = errors.New("invalid spacing parameters")
)

// noRepeatMinPool is the pool size at which the selection constraints
// (no immediate repeat, no disallowed-first) become active. Smaller pools
// accept every draw unconditionally so the rejection loop cannot starve.
const noRepeatMinPool = 4

// maxDrawAttempts caps the rejection loop for one placement. A pool whose
// constraints are jointly unsatisfiable (e.g. every entry disallowed first)
// falls back to the last unconstrained draw instead of spinning.
const maxDrawAttempts = 100

// ObjectDescriptor is one candidate item in a selection pool.
type ObjectDescriptor struct {
	// ID names the sprite this object resolves to at draw time. May be
	// empty for layout-only uses of Pack.
	ID string

	// Width is the object's footprint along the street axis, in feet.
	// Must be positive.
	Width float64

	// DisallowFirst marks objects that must never open a sequence.
	// They may still appear at any later position.
	DisallowFirst bool

	// AnchorY overrides the sprite's vertical anchor, in source pixels up
	// from the sprite's bottom edge. Only consulted when HasAnchorY is set
	// and the sprite itself carries no anchor. Pack ignores it.
	AnchorY    float64
	HasAnchorY bool
}

// PlacedObject is an ObjectDescriptor annotated with its position in a
// packed sequence. Placements are created fresh per Pack call and never
// mutated afterwards.
type PlacedObject struct {
	ObjectDescriptor

	// Left is the running offset of this object's left edge, in feet,
	// before the centering correction is applied. Non-decreasing across
	// the sequence; 0 for the first object.
	Left float64
}

// PlacementResult is the output of Pack. Objects is in selection order,
// which is also draw order and left-to-right order.
type PlacementResult struct {
	Objects []PlacedObject

	// StartLeft is the horizontal centering correction, in feet, to add to
	// every Left value before rendering.
	StartLeft float64
}

// PackParams configures one Pack call.
type PackParams struct {
	// TargetWidth is the segment span to fill, in feet. Must be positive.
	TargetWidth float64

	// Seed initializes the random stream. Equal seeds (with equal pools
	// and parameters) produce identical layouts.
	Seed uint32

	// MinSpacing and MaxSpacing bound the randomized gap, in feet, added
	// after each object. MinSpacing may be zero for back-to-back packing.
	MinSpacing float64
	MaxSpacing float64

	// MaxPoolWidth is the maximum Width across the pool. Caller-supplied
	// so the same value feeds the caller's own coordinate math.
	MaxPoolWidth float64

	// SpacingAdjustment widens every allocated span by a constant, in
	// feet. Must be non-negative.
	SpacingAdjustment float64

	// Padding is the buffer reserved at both span ends, in feet.
	// Zero selects DefaultPadding.
	Padding float64
}

// Pack fills a segment of TargetWidth feet with objects drawn pseudo-randomly
// from pool, and returns the ordered placements plus the centering offset.
//
// The pool is only read; each chosen descriptor is copied into the result.
// Objects are drawn until the accumulated width (object widths plus
// randomized spacing) covers the span minus padding at both ends, so the
// result always contains at least one object. For pools of four or more
// entries, no object immediately repeats and objects marked DisallowFirst
// never open the sequence.
func Pack(pool []ObjectDescriptor, p PackParams) (*PlacementResult, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("streetmix: empty pool: %w", ErrInvalidPool)
	}
	for i := range pool {
		if pool[i].Width <= 0 {
			return nil, fmt.Errorf("streetmix: pool entry %d has width %v: %w", i, pool[i].Width, ErrInvalidPool)
		}
	}
	if p.TargetWidth <= 0 {
		return nil, fmt.Errorf("streetmix: target width %v: %w", p.TargetWidth, ErrInvalidSpacing)
	}
	if p.MinSpacing < 0 || p.MaxSpacing < p.MinSpacing {
		return nil, fmt.Errorf("streetmix: spacing range [%v, %v]: %w", p.MinSpacing, p.MaxSpacing, ErrInvalidSpacing)
	}
	if p.SpacingAdjustment < 0 {
		return nil, fmt.Errorf("streetmix: spacing adjustment %v: %w", p.SpacingAdjustment, ErrInvalidSpacing)
	}
	padding := p.Padding
	if padding == 0 {
		padding = DefaultPadding
	}

	rng := NewStream(p.Seed)
	constrained := len(pool) >= noRepeatMinPool

	var (
		placements   []PlacedObject
		runningWidth float64
		lastSpacing  float64
		prevIndex    = -1
	)

	for len(placements) == 0 || runningWidth < p.TargetWidth-2*padding {
		idx := rng.Intn(len(pool))
		if constrained {
			for attempt := 1; attempt < maxDrawAttempts; attempt++ {
				if idx != prevIndex && !(len(placements) == 0 && pool[idx].DisallowFirst) {
					break
				}
				idx = rng.Intn(len(pool))
			}
		}

		obj := PlacedObject{ObjectDescriptor: pool[idx], Left: runningWidth}

		// Index draw, rejection re-draws, then the spacing draw: the order
		// the shared stream is consumed in is part of the layout contract.
		spacing := p.MinSpacing + rng.Float64()*(p.MaxSpacing-p.MinSpacing) + p.SpacingAdjustment
		runningWidth += obj.Width + spacing
		lastSpacing = spacing

		placements = append(placements, obj)
		prevIndex = idx
	}

	// The last span allocated spacing for a follower that never came.
	totalWidth := runningWidth - lastSpacing

	first := &placements[0]
	last := &placements[len(placements)-1]
	firstCorrection := (p.MaxPoolWidth - first.Width) / 2
	lastCorrection := (p.MaxPoolWidth - last.Width) / 2

	startLeft := (p.TargetWidth - totalWidth) / 2
	if len(placements) == 1 {
		startLeft += firstCorrection
	} else {
		startLeft += (firstCorrection + lastCorrection) / 2
	}

	return &PlacementResult{Objects: placements, StartLeft: startLeft}, nil
}
