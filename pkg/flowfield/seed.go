package flowfield

import (
	"math"
	"math/rand"
)

// point is one canvas position in pixels.
type point struct {
	x, y float64
}

// seedPoints produces the stroke start points for the render.
//
// SeedRandom draws round(area*density) points uniformly over the bounds from
// the render's RNG. SeedGrid places points on a regular lattice with spacing
// sqrt(area/density), row-major, inclusive of the lower edge and exclusive of
// the upper.
func seedPoints(b Bounds, mode string, density float64, rng *rand.Rand) []point {
	area := b.Area()
	var points []point

	switch mode {
	case SeedRandom:
		n := int(math.Round(area * density))
		points = make([]point, 0, n)
		for i := 0; i < n; i++ {
			x := b.X0 + rng.Float64()*b.W()
			y := b.Y0 + rng.Float64()*b.H()
			points = append(points, point{x, y})
		}
	case SeedGrid:
		spacing := math.Sqrt(area / density)
		for y := b.Y0; y < b.Y1; y += spacing {
			for x := b.X0; x < b.X1; x += spacing {
				points = append(points, point{x, y})
			}
		}
	}
	return points
}
