package params

import (
	"math"

	"github.com/SW-Perse/artkathon/pkg/flowfield"
)

// Style bias names. StyleSharp and StylePreferred are synonyms; StyleNatural
// and the empty string leave parameters untouched.
const (
	StyleNatural   = "natural"
	StyleSharp     = "sharp"
	StylePreferred = "preferred"
)

// ValidStyle reports whether name is a recognized style bias.
func ValidStyle(name string) bool {
	switch name {
	case "", StyleNatural, StyleSharp, StylePreferred:
		return true
	}
	return false
}

// ApplyStyle rewrites a subset of the mapped parameters toward a sharper,
// higher-contrast, more turbulent look. The renderer accepts the mutated
// record unchanged; unknown or neutral styles are no-ops.
func ApplyStyle(m *Mapped, style string) {
	if style != StyleSharp && style != StylePreferred {
		return
	}
	c := &m.Config

	// Stronger noise and more detail layers.
	c.NoiseScale = math.Max(3, float64(int(c.NoiseScale*1.6)))
	c.Octaves += 2

	// Explicit quantization for crisp angular strokes.
	if c.QuantizeSteps > 0 {
		if c.QuantizeSteps < 12 {
			c.QuantizeSteps = 12
		}
	} else {
		c.QuantizeSteps = 16
	}

	// Follow the field closely, with less smooth jitter.
	c.Jitter = math.Max(0.001, c.Jitter*0.35)
	c.AngleGain = math.Min(0.99, c.AngleGain+0.25)

	// Finer grid, more strokes.
	c.CellSize = math.Max(2, float64(int(c.CellSize*0.6)))
	c.Density = math.Min(0.02, c.Density*2)

	// Contrast stretch on the ramp endpoints. The LUT is the single color
	// source, so the stretch lands there rather than on side metadata.
	if n := len(c.LUT); n > 0 {
		c.LUT[0] = darken(c.LUT[0], 40)
		c.LUT[n-1] = lighten(c.LUT[n-1], 40)
	}
	if n := len(m.Display); n > 0 {
		m.Display[0] = darken(m.Display[0], 40)
		m.Display[n-1] = lighten(m.Display[n-1], 40)
	}

	// Slightly thicker strokes to emphasize edges.
	c.WidthStart *= 1.4
	c.WidthEnd = math.Max(0.6, c.WidthEnd*0.9)
}

func darken(c flowfield.RGB, amount uint8) flowfield.RGB {
	return flowfield.RGB{R: subClamp(c.R, amount), G: subClamp(c.G, amount), B: subClamp(c.B, amount)}
}

func lighten(c flowfield.RGB, amount uint8) flowfield.RGB {
	return flowfield.RGB{R: addClamp(c.R, amount), G: addClamp(c.G, amount), B: addClamp(c.B, amount)}
}

func subClamp(v, d uint8) uint8 {
	if v < d {
		return 0
	}
	return v - d
}

func addClamp(v, d uint8) uint8 {
	if v > 255-d {
		return 255
	}
	return v + d
}
