package streetmix

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// PoolEntry is one candidate handed to Scatter: either a bare atlas sprite
// name (resolved to a descriptor using the sprite's authored width) or a
// pre-built descriptor that passes through unchanged. Exactly one of the
// two forms is set; Descriptor wins when both are.
type PoolEntry struct {
	Name       string
	Descriptor *ObjectDescriptor
}

// Sprite returns a PoolEntry naming an atlas sprite.
func Sprite(name string) PoolEntry {
	return PoolEntry{Name: name}
}

// Object returns a PoolEntry wrapping a pre-built descriptor.
func Object(d ObjectDescriptor) PoolEntry {
	return PoolEntry{Descriptor: &d}
}

// ScatterParams configures one Scatter call. Distances prefixed "feet" use
// street units; the rest are pixels on the target surface.
type ScatterParams struct {
	// SpanWidth is the segment span to fill, in feet.
	SpanWidth float64

	// OffsetLeft is the pixel X of the segment's left edge on the target.
	OffsetLeft float64

	// Baseline is the pixel Y of the ground line sprites stand on.
	Baseline float64

	// Seed initializes the placement stream; equal seeds reproduce the
	// exact same scatter.
	Seed uint32

	// MinSpacing and MaxSpacing bound the randomized gap between objects,
	// in feet.
	MinSpacing float64
	MaxSpacing float64

	// Adjustment widens each allocated span and shifts every sprite
	// rightward by the same amount, in feet. Must be non-negative.
	Adjustment float64

	// Scale multiplies all output geometry. Zero means 1.
	Scale float64

	// Resolution is the pixel density the atlas was authored at
	// (source px per screen px at scale 1). Zero means 1.
	Resolution float64
}

// DrawCommand is one sprite draw, in placement order. X and Y are the
// top-left corner on the target, in pixels.
type DrawCommand struct {
	Name       string
	Region     TextureRegion
	X, Y       float64
	Scale      float64
	Resolution float64
}

// Scatterer places and draws scattered sprite scenery along street segments
// using one Atlas for sprite metadata and pixels.
type Scatterer struct {
	atlas *Atlas
	cfg   Config
}

// NewScatterer returns a Scatterer bound to the given atlas. The zero
// Config selects DefaultTileSize and DefaultPadding.
func NewScatterer(atlas *Atlas, cfg Config) *Scatterer {
	return &Scatterer{atlas: atlas, cfg: cfg.withDefaults()}
}

// Scatter resolves the pool, packs it across the span, and returns the draw
// commands for the resulting placements in left-to-right order. It returns
// an error (and no commands) for an empty pool, an unknown sprite name, a
// non-positive descriptor width, or degenerate spacing parameters.
func (s *Scatterer) Scatter(pool []PoolEntry, p ScatterParams) ([]DrawCommand, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("streetmix: empty pool: %w", ErrInvalidPool)
	}
	if p.Scale == 0 {
		p.Scale = 1
	}
	if p.Resolution == 0 {
		p.Resolution = 1
	}

	// Source pixels per foot: atlas pages are authored at Resolution x density.
	pxPerFoot := s.cfg.TileSize * p.Resolution

	resolved := make([]ObjectDescriptor, len(pool))
	for i, entry := range pool {
		if entry.Descriptor != nil {
			resolved[i] = *entry.Descriptor
			continue
		}
		region, err := s.atlas.FindRegion(entry.Name)
		if err != nil {
			return nil, err
		}
		resolved[i] = ObjectDescriptor{
			ID:    entry.Name,
			Width: float64(region.OriginalW) / pxPerFoot,
		}
	}

	maxPoolWidth := 0.0
	for i := range resolved {
		if resolved[i].Width > maxPoolWidth {
			maxPoolWidth = resolved[i].Width
		}
	}

	result, err := Pack(resolved, PackParams{
		TargetWidth:       p.SpanWidth,
		Seed:              p.Seed,
		MinSpacing:        p.MinSpacing,
		MaxSpacing:        p.MaxSpacing,
		MaxPoolWidth:      maxPoolWidth,
		SpacingAdjustment: p.Adjustment,
		Padding:           s.cfg.Padding,
	})
	if err != nil {
		return nil, err
	}

	cmds := make([]DrawCommand, 0, len(result.Objects))
	for i := range result.Objects {
		pl := &result.Objects[i]
		region, err := s.atlas.FindRegion(pl.ID)
		if err != nil {
			return nil, err
		}

		// Sprite-level anchor beats the descriptor override beats zero.
		anchor := 0.0
		switch {
		case region.HasAnchor:
			anchor = region.AnchorY
		case pl.HasAnchorY:
			anchor = pl.AnchorY
		}

		assetWidth := float64(region.OriginalW) / pxPerFoot

		// Left is a running edge offset; center the sprite's true footprint
		// on it, align against the widest pool member, then apply the
		// centering correction and caller adjustment.
		xFeet := pl.Left - assetWidth/2 - (maxPoolWidth-pl.Width)/2 +
			result.StartLeft + p.Adjustment
		x := p.OffsetLeft + xFeet*s.cfg.TileSize*p.Scale
		y := p.Baseline - (float64(region.OriginalH)-anchor)*p.Scale/p.Resolution

		cmds = append(cmds, DrawCommand{
			Name:       pl.ID,
			Region:     region,
			X:          x,
			Y:          y,
			Scale:      p.Scale,
			Resolution: p.Resolution,
		})
	}

	debugLogScatter(p.Seed, cmds, result.StartLeft)
	return cmds, nil
}

// Draw submits the commands to the target in order. Command order is paint
// order: later sprites overlap earlier ones.
func (s *Scatterer) Draw(target *ebiten.Image, cmds []DrawCommand) {
	var op ebiten.DrawImageOptions

	for i := range cmds {
		cmd := &cmds[i]
		r := &cmd.Region

		var page *ebiten.Image
		if r.Page == magentaPlaceholderPage {
			page = ensureMagentaImage()
		} else if int(r.Page) < len(s.atlas.Pages) {
			page = s.atlas.Pages[r.Page]
		}
		if page == nil {
			continue
		}

		var subRect image.Rectangle
		if r.Rotated {
			subRect = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Height), int(r.Y)+int(r.Width))
		} else {
			subRect = image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
		}
		subImg := page.SubImage(subRect).(*ebiten.Image)

		op.GeoM.Reset()

		// Rotated regions are stored 90° CW in the atlas: rotate back and
		// shift right by the stored height.
		if r.Rotated {
			op.GeoM.Rotate(-1.5707963267948966) // -π/2
			op.GeoM.Translate(0, float64(r.Width))
		}

		// Trim offset, in source pixels.
		if r.OffsetX != 0 || r.OffsetY != 0 {
			op.GeoM.Translate(float64(r.OffsetX), float64(r.OffsetY))
		}

		// Source px -> target px, then position.
		op.GeoM.Scale(cmd.Scale/cmd.Resolution, cmd.Scale/cmd.Resolution)
		op.GeoM.Translate(cmd.X, cmd.Y)

		target.DrawImage(subImg, &op)
	}
}
