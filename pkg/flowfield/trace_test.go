package flowfield

import (
	"math"
	"math/rand"
	"testing"
)

// uniformGrid builds a field holding the same angle everywhere, for
// predictable trajectories.
func uniformGrid(b Bounds, cell, angle float64) *angleGrid {
	nx := int(b.W() / cell)
	ny := int(b.H() / cell)
	angles := make([][]float64, ny)
	for y := range angles {
		angles[y] = make([]float64, nx)
		for x := range angles[y] {
			angles[y][x] = angle
		}
	}
	return &angleGrid{angles: angles, bounds: b, cell: cell}
}

func TestTraceStrokeDegenerate(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)

	tests := []struct {
		name      string
		maxLength int
		stepSize  float64
	}{
		{"zero max length", 0, 3},
		{"zero step size", 50, 0},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{MaxLength: tt.maxLength, StepSize: tt.stepSize, AngleGain: 0.5}
			got := traceStroke(point{50, 50}, g, &cfg, rand.New(rand.NewSource(1)))
			if len(got) != 1 {
				t.Fatalf("positions = %d, want exactly 1", len(got))
			}
		})
	}
}

func TestTraceStrokeFollowsField(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0) // flow points along +x

	cfg := Config{MaxLength: 5, StepSize: 2, AngleGain: 1, Jitter: 0}
	got := traceStroke(point{10, 50}, g, &cfg, rand.New(rand.NewSource(1)))

	if len(got) != 6 {
		t.Fatalf("positions = %d, want 6", len(got))
	}
	for i, p := range got {
		wantX := 10 + float64(i)*2
		if math.Abs(p.x-wantX) > 1e-9 || math.Abs(p.y-50) > 1e-9 {
			t.Fatalf("positions[%d] = (%v, %v), want (%v, 50)", i, p.x, p.y, wantX)
		}
	}
}

func TestTraceStrokeStopsAtBounds(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)

	// Start near the right edge; the stroke must end at the last in-bounds
	// point, without appending the out-of-bounds candidate.
	cfg := Config{MaxLength: 50, StepSize: 3, AngleGain: 1, Jitter: 0}
	got := traceStroke(point{95, 50}, g, &cfg, rand.New(rand.NewSource(1)))

	last := got[len(got)-1]
	if !b.Contains(last.x, last.y) {
		t.Fatalf("last position (%v, %v) outside bounds", last.x, last.y)
	}
	if len(got) >= 50 {
		t.Fatalf("positions = %d, expected early termination", len(got))
	}
	// 95 → 98 → next candidate 101 is rejected.
	if len(got) != 2 {
		t.Fatalf("positions = %d, want 2", len(got))
	}
}

func TestTraceStrokeStepBudget(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 1000, Y1: 1000}
	g := uniformGrid(b, 10, math.Pi/4)

	cfg := Config{MaxLength: 7, StepSize: 1, AngleGain: 1, Jitter: 0}
	got := traceStroke(point{500, 500}, g, &cfg, rand.New(rand.NewSource(1)))
	if len(got) != 8 {
		t.Fatalf("positions = %d, want MaxLength+1 = 8", len(got))
	}
}

func TestTraceStrokeJitterDeterministic(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 1000, Y1: 1000}
	g := uniformGrid(b, 10, 0.3)
	cfg := Config{MaxLength: 40, StepSize: 2, AngleGain: 0.5, Jitter: 0.2}

	a := traceStroke(point{500, 500}, g, &cfg, rand.New(rand.NewSource(3)))
	c := traceStroke(point{500, 500}, g, &cfg, rand.New(rand.NewSource(3)))
	if len(a) != len(c) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(c))
	}
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("positions[%d] differ: %+v vs %+v", i, a[i], c[i])
		}
	}
}
