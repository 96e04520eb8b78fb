// Package params maps a 14-dimensional poem feature vector and a color
// scheme to a complete renderer configuration.
//
// The mapping is the bridge between text analysis and the flow field: each
// vector dimension drives one visual parameter (turbulence, stroke density,
// swirl, palette, ...). The numeric formulas are fixed; callers treat the
// resulting Config as opaque validated input for pkg/flowfield.
package params

import (
	"fmt"
	"math"

	"github.com/SW-Perse/artkathon/pkg/feature"
	"github.com/SW-Perse/artkathon/pkg/flowfield"
	"github.com/SW-Perse/artkathon/pkg/palette"
)

// Canvas defaults for mapped renders. Callers may scale these down for
// previews before rendering.
const (
	DefaultWidth  = 3000
	DefaultHeight = 3000
)

// Mapped is one render-ready parameter set: the core Config plus the
// metadata the pipeline uses for filenames and display.
type Mapped struct {
	Config flowfield.Config

	// PaletteName labels the colormap the LUT was sampled from.
	PaletteName string
	// Display is the coarse 8-color palette for UI swatches; the renderer
	// never reads it.
	Display []flowfield.RGB
	// Emotion is the genre band v[13] fell into.
	Emotion string
}

// Emotion maps the genre dimension v[13] to its emotion band.
func Emotion(v13 float64) string {
	switch {
	case v13 < 0.2:
		return palette.EmotionFear
	case v13 < 0.3:
		return palette.EmotionAnger
	case v13 < 0.4:
		return palette.EmotionSadness
	case v13 < 0.5:
		return palette.EmotionLove
	case v13 < 0.6:
		return palette.EmotionJoy
	case v13 < 0.7:
		return palette.EmotionSurprise
	default:
		return palette.EmotionDefault
	}
}

// FromVector maps a feature vector to render parameters under the given
// color scheme. The vector must have exactly feature.Dim dimensions.
func FromVector(v []float64, scheme palette.Scheme) (*Mapped, error) {
	if len(v) != feature.Dim {
		return nil, fmt.Errorf("feature vector has %d dimensions, want %d", len(v), feature.Dim)
	}

	emotion := Emotion(v[13])
	sample := scheme.ForEmotion(emotion)
	cmap, ok := palette.ByName(sample.Map)
	if !ok {
		return nil, fmt.Errorf("scheme %q references unknown colormap %q", scheme.Name, sample.Map)
	}

	seed := int64(v[9] * 1000)

	cfg := flowfield.Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		CellSize:     float64(int(4 + v[3]*8)),
		MarginFactor: 0.08,

		NoiseScale: math.Max(2, v[4]*8),
		Octaves:    int(3 + v[7]*4),
		Seed:       &seed,

		QuantizeSteps: int(v[5] * 12),
		Swirl:         v[6] * 0.3,

		Seeding: flowfield.SeedRandom,
		Density: clamp(v[2]*0.002, 0.001, 0.006),

		MaxLength: int(400 + v[10]*20),
		StepSize:  2 + v[8]*4,
		AngleGain: clamp(0.6+v[1]*0.3, 0, 1),
		Jitter:    math.Max(0, v[0]*0.15),

		LUT:                 cmap.LUT(sample.Lo, sample.Hi, palette.LUTSize),
		PaletteAxis:         scheme.Axis,
		PaletteWithinStroke: scheme.WithinStroke,

		WidthStart: 6 + v[11]*0.3,
		WidthEnd:   0.8,

		Background: flowfield.RGB{R: 250, G: 250, B: 245},
	}

	return &Mapped{
		Config:      cfg,
		PaletteName: cmap.Name(),
		Display:     cmap.LUT(sample.Lo, sample.Hi, palette.DisplaySize),
		Emotion:     emotion,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
