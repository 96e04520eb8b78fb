package flowfield

import "math"

const twoPi = 2 * math.Pi

// angleGrid is the flow field: a dense ny×nx grid of direction angles in
// radians covering the drawable bounds, one value per CellSize×CellSize cell.
// Angles are noise*2π plus an optional swirl term, optionally quantized; they
// are not reduced mod 2π.
type angleGrid struct {
	angles [][]float64
	bounds Bounds
	cell   float64
}

// buildAngleGrid sizes the grid from the bounds and cell size, fills it from
// gradient noise, and applies the distortions in fixed order:
// noise → swirl → quantization.
func buildAngleGrid(c *Config, b Bounds) (*angleGrid, error) {
	nx := int(b.W() / c.CellSize)
	ny := int(b.H() / c.CellSize)
	if nx < 1 || ny < 1 {
		return nil, &ConfigError{Field: "cell_size", Value: c.CellSize, Reason: "grid would be empty"}
	}

	scale := int(c.NoiseScale)
	if scale < minNoiseScale {
		scale = minNoiseScale
	}
	noise, err := noiseField(ny, nx, scale, scale, c.Octaves, c.Seed)
	if err != nil {
		return nil, err
	}

	g := &angleGrid{angles: noise, bounds: b, cell: c.CellSize}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			g.angles[y][x] *= twoPi
		}
	}

	if c.Swirl > 0 {
		cy, cx := float64(ny)/2, float64(nx)/2
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				theta := math.Atan2(float64(y)-cy, float64(x)-cx)
				g.angles[y][x] += theta * c.Swirl
			}
		}
	}

	// Quantization is lossy: it snaps after the swirl term was added, so part
	// of the swirl contribution is destroyed. The order is deliberate.
	if c.QuantizeSteps > 0 {
		n := float64(c.QuantizeSteps)
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				g.angles[y][x] = math.Round(g.angles[y][x]/twoPi*n) * twoPi / n
			}
		}
	}

	return g, nil
}

// at samples the field angle for a continuous canvas position. Positions are
// truncated into cell units; samples outside the grid return angle 0, a
// documented fallback rather than an error.
func (g *angleGrid) at(x, y float64) float64 {
	gx := int((x - g.bounds.X0) / g.cell)
	gy := int((y - g.bounds.Y0) / g.cell)
	if gy < 0 || gy >= len(g.angles) || gx < 0 || gx >= len(g.angles[0]) {
		return 0
	}
	return g.angles[gy][gx]
}
