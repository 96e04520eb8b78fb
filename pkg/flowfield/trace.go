package flowfield

import (
	"math"
	"math/rand"
)

// traceStroke advances one seed point through the angle field and returns the
// resulting polyline.
//
// The initial heading is the field angle at the start cell. Each step blends
// the heading toward the local field angle by AngleGain, adds uniform jitter
// in [-Jitter, Jitter], and advances StepSize along the heading. The stroke
// terminates when the candidate position falls outside the bounds (it is not
// appended; the stroke ends at the last in-bounds point) or when MaxLength
// steps have been taken.
//
// A zero MaxLength or StepSize yields a single-point stroke, which callers
// skip when drawing.
func traceStroke(start point, g *angleGrid, c *Config, rng *rand.Rand) []point {
	positions := []point{start}
	if c.MaxLength <= 0 || c.StepSize <= 0 {
		return positions
	}

	x, y := start.x, start.y
	heading := g.at(x, y)

	for i := 0; i < c.MaxLength; i++ {
		fieldAngle := g.at(x, y)
		heading = heading*(1-c.AngleGain) + fieldAngle*c.AngleGain
		heading += (rng.Float64()*2 - 1) * c.Jitter

		nx := x + math.Cos(heading)*c.StepSize
		ny := y + math.Sin(heading)*c.StepSize
		if !g.bounds.Contains(nx, ny) {
			break
		}
		x, y = nx, ny
		positions = append(positions, point{x, y})
	}
	return positions
}
