package flowfield

import (
	"errors"
	"math"
	"testing"
)

func gridConfig() Config {
	s := int64(1)
	return Config{
		Width: 1000, Height: 1000,
		CellSize: 20, MarginFactor: 0.1,
		NoiseScale: 4, Octaves: 1, Seed: &s,
		Seeding: SeedGrid, Density: 0.001,
		MaxLength: 10, StepSize: 2, AngleGain: 0.5,
		LUT:        []RGB{{0, 0, 0}},
		WidthStart: 1, WidthEnd: 1,
		Background: RGB{255, 255, 255},
	}
}

func TestGridSizing(t *testing.T) {
	cfg := gridConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	b, err := computeBounds(&cfg)
	if err != nil {
		t.Fatalf("computeBounds: %v", err)
	}
	if b.X0 != 100 || b.Y0 != 100 || b.X1 != 900 || b.Y1 != 900 {
		t.Fatalf("bounds = %+v, want 100,100,900,900", b)
	}
	g, err := buildAngleGrid(&cfg, b)
	if err != nil {
		t.Fatalf("buildAngleGrid: %v", err)
	}
	if ny, nx := len(g.angles), len(g.angles[0]); ny != 40 || nx != 40 {
		t.Fatalf("grid = %dx%d, want 40x40", ny, nx)
	}
}

func TestBoundsError(t *testing.T) {
	cfg := gridConfig()
	cfg.Width, cfg.Height = 100, 100
	cfg.MarginFactor = 0.6
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	_, err := computeBounds(&cfg)
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *BoundsError", err)
	}
	if be.Margin != 60 {
		t.Errorf("Margin = %v, want 60", be.Margin)
	}
}

func TestAngleGridRange(t *testing.T) {
	cfg := gridConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	b, _ := computeBounds(&cfg)
	g, err := buildAngleGrid(&cfg, b)
	if err != nil {
		t.Fatalf("buildAngleGrid: %v", err)
	}
	// Without swirl or quantization the angles are noise*2π.
	for y := range g.angles {
		for x, a := range g.angles[y] {
			if a < -twoPi || a > twoPi {
				t.Fatalf("angle[%d][%d] = %v, outside [-2π, 2π]", y, x, a)
			}
		}
	}
}

func TestQuantizeSnapsAngles(t *testing.T) {
	cfg := gridConfig()
	cfg.QuantizeSteps = 4
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	b, _ := computeBounds(&cfg)
	g, err := buildAngleGrid(&cfg, b)
	if err != nil {
		t.Fatalf("buildAngleGrid: %v", err)
	}
	step := twoPi / 4
	for y := range g.angles {
		for x, a := range g.angles[y] {
			ratio := a / step
			if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
				t.Fatalf("angle[%d][%d] = %v not a multiple of 2π/4", y, x, a)
			}
		}
	}
}

func TestSwirlChangesAngles(t *testing.T) {
	cfg := gridConfig()
	b, _ := computeBounds(&cfg)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plain, _ := buildAngleGrid(&cfg, b)

	swirled := gridConfig()
	swirled.Swirl = 0.3
	if err := swirled.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	sg, _ := buildAngleGrid(&swirled, b)

	if plain.angles[0][0] == sg.angles[0][0] && plain.angles[10][30] == sg.angles[10][30] {
		t.Fatal("swirl had no effect on the field")
	}
}

func TestFieldSampleFallback(t *testing.T) {
	cfg := gridConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	b, _ := computeBounds(&cfg)
	g, _ := buildAngleGrid(&cfg, b)

	tests := []struct {
		name string
		x, y float64
	}{
		{"left of bounds", b.X0 - 50, b.Y0 + 10},
		{"above bounds", b.X0 + 10, b.Y0 - 50},
		{"far past right", b.X1 + 1000, b.Y0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if a := g.at(tt.x, tt.y); a != 0 {
				t.Errorf("at(%v, %v) = %v, want 0", tt.x, tt.y, a)
			}
		})
	}
}

func TestGridEmptyIsConfigError(t *testing.T) {
	cfg := gridConfig()
	cfg.CellSize = 5000 // bigger than the drawable area
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	b, _ := computeBounds(&cfg)
	_, err := buildAngleGrid(&cfg, b)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}
