package flowfield

import (
	"math"
	"math/rand"
	"time"
)

// fade is the quintic smoothstep t³(t(6t-15)+10) used for lattice
// interpolation. Linear interpolation leaves visible grid artifacts.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// noiseField synthesizes multi-octave 2D gradient noise sampled at rows×cols
// points over a base lattice of resY×resX cells. Octave o doubles the lattice
// resolution and halves the amplitude; the sum is normalized by the total
// amplitude, so values stay in [-1, 1].
//
// Each octave derives its lattice gradients from seed+o, so identical
// (shape, res, octaves, seed) inputs reproduce the identical field. A nil
// seed uses ambient randomness.
func noiseField(rows, cols, resY, resX, octaves int, seed *int64) ([][]float64, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &ConfigError{Field: "shape", Value: [2]int{rows, cols}, Reason: "must be positive"}
	}
	if resY <= 0 || resX <= 0 {
		return nil, &ConfigError{Field: "res", Value: [2]int{resY, resX}, Reason: "must be positive"}
	}
	if octaves < 1 {
		octaves = 1
	}
	if octaves > maxOctaves {
		octaves = maxOctaves
	}

	total := make([][]float64, rows)
	for r := range total {
		total[r] = make([]float64, cols)
	}

	amplitude := 1.0
	maxAmp := 0.0
	for o := 0; o < octaves; o++ {
		freq := 1 << o
		rng := octaveRand(seed, o)
		layer := noiseOctave(rows, cols, resY*freq, resX*freq, rng)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				total[r][c] += amplitude * layer[r][c]
			}
		}
		maxAmp += amplitude
		amplitude *= 0.5
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			total[r][c] /= maxAmp
		}
	}
	return total, nil
}

// octaveRand returns the gradient source for octave o: seed+o when a seed is
// set, a time-derived source otherwise.
func octaveRand(seed *int64, o int) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed + int64(o)))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano() + int64(o)))
}

// noiseOctave computes one octave: unit gradients at the (resY+1)×(resX+1)
// lattice points, then per pixel the quintic-blended dot products of the four
// surrounding gradients with the offset vectors.
func noiseOctave(rows, cols, resY, resX int, rng *rand.Rand) [][]float64 {
	gx := make([][]float64, resY+1)
	gy := make([][]float64, resY+1)
	for y := 0; y <= resY; y++ {
		gx[y] = make([]float64, resX+1)
		gy[y] = make([]float64, resX+1)
		for x := 0; x <= resX; x++ {
			a := 2 * math.Pi * rng.Float64()
			gx[y][x] = math.Cos(a)
			gy[y][x] = math.Sin(a)
		}
	}

	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		fy := float64(resY) * float64(r) / float64(rows)
		yi := int(fy)
		yf := fy - float64(yi)
		v := fade(yf)
		for c := 0; c < cols; c++ {
			fx := float64(resX) * float64(c) / float64(cols)
			xi := int(fx)
			xf := fx - float64(xi)
			u := fade(xf)

			d00 := gx[yi][xi]*xf + gy[yi][xi]*yf
			d10 := gx[yi][xi+1]*(xf-1) + gy[yi][xi+1]*yf
			d01 := gx[yi+1][xi]*xf + gy[yi+1][xi]*(yf-1)
			d11 := gx[yi+1][xi+1]*(xf-1) + gy[yi+1][xi+1]*(yf-1)

			nx0 := d00*(1-u) + d10*u
			nx1 := d01*(1-u) + d11*u
			out[r][c] = nx0*(1-v) + nx1*v
		}
	}
	return out
}
