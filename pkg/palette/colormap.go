// Package palette builds the color lookup tables consumed by the renderer.
//
// A Colormap is a named ramp defined by a handful of RGB stops; samples
// between stops are blended in Lab space (via go-colorful) so the ramps stay
// perceptually smooth. A Scheme maps emotions to (colormap, sample range)
// pairs and fixes how the renderer spreads colors across and within strokes.
package palette

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/SW-Perse/artkathon/pkg/flowfield"
)

// LUT sizes: the renderer consumes the high-resolution table; the coarse one
// exists only for display and labeling, never for drawing.
const (
	LUTSize     = 256
	DisplaySize = 8
)

// Colormap is an ordered color ramp sampled on [0, 1].
type Colormap struct {
	name  string
	stops []stop
}

type stop struct {
	pos float64
	col colorful.Color
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// evenStops spreads colors uniformly over [0, 1].
func evenStops(cols ...colorful.Color) []stop {
	stops := make([]stop, len(cols))
	for i, c := range cols {
		stops[i] = stop{pos: float64(i) / float64(len(cols)-1), col: c}
	}
	return stops
}

// The ramp tables approximate the colormaps the original artworks were tuned
// against. Order matters: each ramp runs from its sample position 0 to 1.
var colormaps = map[string]Colormap{
	"bone": {name: "bone", stops: evenStops(
		rgb(0, 0, 0), rgb(81, 81, 113), rgb(166, 198, 198), rgb(255, 255, 255),
	)},
	"hot": {name: "hot", stops: evenStops(
		rgb(10, 0, 0), rgb(230, 0, 0), rgb(255, 210, 0), rgb(255, 255, 255),
	)},
	"PuBu": {name: "PuBu", stops: evenStops(
		rgb(255, 247, 251), rgb(208, 209, 230), rgb(116, 169, 207),
		rgb(5, 112, 176), rgb(2, 56, 88),
	)},
	"RdPu": {name: "RdPu", stops: evenStops(
		rgb(255, 247, 243), rgb(252, 197, 192), rgb(247, 104, 161),
		rgb(174, 1, 126), rgb(73, 0, 106),
	)},
	"rainbow": {name: "rainbow", stops: evenStops(
		rgb(148, 0, 211), rgb(0, 0, 255), rgb(0, 255, 255), rgb(0, 255, 0),
		rgb(255, 255, 0), rgb(255, 127, 0), rgb(255, 0, 0),
	)},
	"cividis": {name: "cividis", stops: evenStops(
		rgb(0, 32, 76), rgb(64, 77, 107), rgb(123, 123, 120),
		rgb(188, 175, 111), rgb(255, 234, 70),
	)},
	"grey": {name: "grey", stops: evenStops(
		rgb(0, 0, 0), rgb(255, 255, 255),
	)},
}

// ByName returns the named colormap. The second return is false for unknown
// names.
func ByName(name string) (Colormap, bool) {
	m, ok := colormaps[name]
	return m, ok
}

// MapNames returns the known colormap names, sorted.
func MapNames() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name returns the colormap's name.
func (m Colormap) Name() string { return m.name }

// At samples the ramp at t in [0, 1], clamping t. Between stops the colors
// are blended in Lab space.
func (m Colormap) At(t float64) flowfield.RGB {
	if t <= 0 {
		return toRGB(m.stops[0].col)
	}
	if t >= 1 {
		return toRGB(m.stops[len(m.stops)-1].col)
	}
	for i := 1; i < len(m.stops); i++ {
		if t <= m.stops[i].pos {
			lo, hi := m.stops[i-1], m.stops[i]
			frac := (t - lo.pos) / (hi.pos - lo.pos)
			return toRGB(lo.col.BlendLab(hi.col, frac).Clamped())
		}
	}
	return toRGB(m.stops[len(m.stops)-1].col)
}

// LUT samples n colors from positions lo..hi of the ramp, endpoints
// inclusive. n must be at least 1; n=1 samples lo only.
func (m Colormap) LUT(lo, hi float64, n int) []flowfield.RGB {
	if n < 1 {
		n = 1
	}
	lut := make([]flowfield.RGB, n)
	for i := range lut {
		t := lo
		if n > 1 {
			t = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		lut[i] = m.At(t)
	}
	return lut
}

func toRGB(c colorful.Color) flowfield.RGB {
	r, g, b := c.RGB255()
	return flowfield.RGB{R: r, G: g, B: b}
}
