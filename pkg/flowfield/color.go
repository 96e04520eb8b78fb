package flowfield

import (
	"math"
	"math/rand"
)

// colorizer maps intra-stroke progress to a LUT color. The stroke sweeps a
// sub-range of the ramp: the base index is picked once per stroke from the
// palette-axis metric, and the sweep width (span) is fixed by
// PaletteWithinStroke. span=0 gives flat per-stroke color; a span of L-1
// sweeps the full ramp.
type colorizer struct {
	lut     []RGB
	baseIdx int
	span    int
}

// newColorizer computes the per-stroke base metric and LUT sub-range for a
// stroke starting at start. The "random" axis consumes one draw from the
// render's RNG, the same stream seeding and jitter use.
func newColorizer(start point, g *angleGrid, c *Config, rng *rand.Rand) colorizer {
	b := g.bounds

	var base float64
	switch c.PaletteAxis {
	case AxisY:
		base = (start.y - b.Y0) / math.Max(1, b.H())
	case AxisField:
		a := math.Mod(g.at(start.x, start.y), twoPi)
		if a < 0 {
			a += twoPi
		}
		base = a / twoPi
	case AxisRandom:
		base = rng.Float64()
	default: // AxisX
		base = (start.x - b.X0) / math.Max(1, b.W())
	}
	base = math.Max(0, math.Min(1, base))

	l := len(c.LUT)
	if l <= 1 {
		return colorizer{lut: c.LUT}
	}

	span := int(math.Round(float64(l-1) * c.PaletteWithinStroke))
	if span < 0 {
		span = 0
	}
	if span > l-1 {
		span = l - 1
	}
	baseIdx := int(math.Round(base * float64(l-1-span)))

	return colorizer{lut: c.LUT, baseIdx: baseIdx, span: span}
}

// at returns the color for progress t in [0,1] along the stroke. The index
// is clamped into the LUT, never wrapped.
func (cz colorizer) at(t float64) RGB {
	idx := cz.baseIdx + int(math.Round(t*float64(cz.span)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(cz.lut)-1 {
		idx = len(cz.lut) - 1
	}
	return cz.lut[idx]
}
