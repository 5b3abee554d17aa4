// Package streetmix renders procedurally scattered sprite scenery along a
// linear street segment with [Ebitengine].
//
// Given a pool of candidate objects and a segment width in feet, the packer
// produces a deterministic, seed-reproducible sequence of placements:
//
//	result, err := streetmix.Pack(pool, streetmix.PackParams{
//		TargetWidth:  24,
//		Seed:         1234,
//		MinSpacing:   1,
//		MaxSpacing:   3,
//		MaxPoolWidth: 3,
//	})
//
// The same seed always yields the same layout, so a street can be redrawn
// frame after frame (or machine after machine) without visible churn.
//
// The [Scatterer] turns placements into pixel-space draw commands using
// sprite metadata from a TexturePacker [Atlas], then submits them in
// left-to-right order:
//
//	sc := streetmix.NewScatterer(atlas, streetmix.Config{})
//	cmds, err := sc.Scatter(pool, params)
//	sc.Draw(screen, cmds)
//
// Placement order is draw order; overlapping sprites paint left to right.
//
// A horizontal [Camera] with tweened scrolling (via [gween]) is included for
// panning along streets wider than the viewport. See examples/street for a
// runnable demo that needs no external assets.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package streetmix
