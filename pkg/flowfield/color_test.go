package flowfield

import (
	"math/rand"
	"testing"
)

func grayLUT(n int) []RGB {
	lut := make([]RGB, n)
	for i := range lut {
		v := uint8(i * 255 / (n - 1))
		lut[i] = RGB{v, v, v}
	}
	return lut
}

func TestColorizerSpan(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)

	// L=256, palette_within_stroke=0.5: span = round(255*0.5) = 128.
	cfg := Config{
		LUT:                 grayLUT(256),
		PaletteAxis:         AxisX,
		PaletteWithinStroke: 0.5,
	}
	cz := newColorizer(point{0, 0}, g, &cfg, rand.New(rand.NewSource(1)))
	if cz.span != 128 {
		t.Fatalf("span = %d, want 128", cz.span)
	}
	if cz.baseIdx != 0 {
		t.Fatalf("baseIdx = %d, want 0 for base=0", cz.baseIdx)
	}
	// At t=1 the index reaches baseIdx+span, still inside the LUT.
	if got, want := cz.at(1.0), cfg.LUT[128]; got != want {
		t.Fatalf("at(1.0) = %+v, want %+v", got, want)
	}
}

func TestColorizerFlatColor(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)

	cfg := Config{
		LUT:                 grayLUT(256),
		PaletteAxis:         AxisX,
		PaletteWithinStroke: 0,
	}
	cz := newColorizer(point{37, 12}, g, &cfg, rand.New(rand.NewSource(1)))
	first := cz.at(0)
	for _, tt := range []float64{0.1, 0.25, 0.5, 0.9, 1.0} {
		if got := cz.at(tt); got != first {
			t.Fatalf("at(%v) = %+v, want flat color %+v", tt, got, first)
		}
	}
}

func TestColorizerAxes(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)
	lut := grayLUT(11)

	tests := []struct {
		name     string
		axis     string
		start    point
		wantBase int // expected base index with span=0
	}{
		{"x axis left", AxisX, point{0, 50}, 0},
		{"x axis right", AxisX, point{100, 50}, 10},
		{"x axis middle", AxisX, point{50, 50}, 5},
		{"y axis top", AxisY, point{50, 0}, 0},
		{"y axis bottom", AxisY, point{50, 100}, 10},
		{"field axis zero angle", AxisField, point{50, 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{LUT: lut, PaletteAxis: tt.axis}
			cz := newColorizer(tt.start, g, &cfg, rand.New(rand.NewSource(1)))
			if cz.baseIdx != tt.wantBase {
				t.Errorf("baseIdx = %d, want %d", cz.baseIdx, tt.wantBase)
			}
		})
	}
}

func TestColorizerFieldAxisNegativeAngle(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, -twoPi/4) // -π/2 wraps to 3π/2 → base 0.75
	cfg := Config{LUT: grayLUT(101), PaletteAxis: AxisField}
	cz := newColorizer(point{50, 50}, g, &cfg, rand.New(rand.NewSource(1)))
	if cz.baseIdx != 75 {
		t.Fatalf("baseIdx = %d, want 75", cz.baseIdx)
	}
}

func TestColorizerRandomAxisUsesRenderStream(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)
	cfg := Config{LUT: grayLUT(256), PaletteAxis: AxisRandom}

	a := newColorizer(point{1, 1}, g, &cfg, rand.New(rand.NewSource(11)))
	c := newColorizer(point{1, 1}, g, &cfg, rand.New(rand.NewSource(11)))
	if a.baseIdx != c.baseIdx {
		t.Fatalf("same RNG state gave different bases: %d vs %d", a.baseIdx, c.baseIdx)
	}
}

func TestColorizerSingleEntryLUT(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)
	cfg := Config{LUT: []RGB{{9, 9, 9}}, PaletteAxis: AxisX, PaletteWithinStroke: 1}
	cz := newColorizer(point{80, 80}, g, &cfg, rand.New(rand.NewSource(1)))
	for _, tt := range []float64{0, 0.5, 1} {
		if got := cz.at(tt); got != (RGB{9, 9, 9}) {
			t.Fatalf("at(%v) = %+v, want the single LUT entry", tt, got)
		}
	}
}

func TestColorizerIndexNeverOverflows(t *testing.T) {
	b := Bounds{X0: 0, Y0: 0, X1: 100, Y1: 100}
	g := uniformGrid(b, 10, 0)
	cfg := Config{LUT: grayLUT(256), PaletteAxis: AxisX, PaletteWithinStroke: 1}
	cz := newColorizer(point{100, 50}, g, &cfg, rand.New(rand.NewSource(1)))
	for i := 0; i <= 100; i++ {
		tt := float64(i) / 100
		got := cz.at(tt)
		_ = got // any out-of-range index would panic before this
	}
	if got, want := cz.at(1), cfg.LUT[255]; got != want {
		t.Fatalf("at(1) = %+v, want %+v", got, want)
	}
}
