package flowfield

import "math"

// Seeding modes for stroke start points.
const (
	SeedGrid   = "grid"   // regular lattice over the bounds
	SeedRandom = "random" // uniform random points over the bounds
)

// Palette axes: the metric used to pick a stroke's base position in the LUT.
const (
	AxisX      = "x"      // normalized start-x within bounds
	AxisY      = "y"      // normalized start-y within bounds
	AxisField  = "field"  // flow angle at the stroke start
	AxisRandom = "random" // one draw from the render's RNG
)

// Default values for the optional Config fields.
const (
	DefaultNoiseScale = 4
	DefaultOctaves    = 1
	DefaultAxis       = AxisX

	minNoiseScale = 2
	maxOctaves    = 10
)

// RGB is one 8-bit-per-channel color. The renderer treats colors as opaque
// values; it never blends them.
type RGB struct {
	R, G, B uint8
}

// Config is the immutable parameter record for one render call.
//
// Required fields: Width, Height, CellSize, MarginFactor, Seeding, Density,
// MaxLength, StepSize, AngleGain, Jitter, LUT, WidthStart, WidthEnd,
// Background. The remaining fields carry documented defaults applied by
// Validate.
type Config struct {
	Width  int
	Height int

	// CellSize is the edge length of one angle-grid cell in pixels.
	CellSize float64
	// MarginFactor is the fraction of min(Width, Height) reserved as a
	// border on every side.
	MarginFactor float64

	// NoiseScale is the base lattice resolution of the gradient noise,
	// clamped to a minimum of 2. Zero means DefaultNoiseScale.
	NoiseScale float64
	// Octaves is the number of noise layers, clamped to [1, 10]. Zero means
	// DefaultOctaves.
	Octaves int
	// Seed bootstraps every pseudo-random draw of the render. Nil means
	// ambient (non-reproducible) randomness.
	Seed *int64

	// Swirl adds a circular bias toward spiral flow. Zero disables it.
	Swirl float64
	// QuantizeSteps snaps angles to this many equally spaced directions.
	// Zero disables quantization.
	QuantizeSteps int

	// Seeding selects SeedGrid or SeedRandom; Density controls how many
	// start points are produced.
	Seeding string
	Density float64

	// MaxLength bounds the number of steps per stroke; StepSize is the
	// distance advanced per step; AngleGain in [0,1] blends the current
	// heading with the field angle; Jitter is the uniform per-step angular
	// noise in radians.
	MaxLength int
	StepSize  float64
	AngleGain float64
	Jitter    float64

	// LUT is the ordered color ramp, consumed read-only. PaletteAxis picks
	// the per-stroke base metric; PaletteWithinStroke in [0,1] controls how
	// much of the ramp one stroke sweeps.
	LUT                 []RGB
	PaletteAxis         string
	PaletteWithinStroke float64

	// Stroke width is interpolated from WidthStart to WidthEnd.
	WidthStart float64
	WidthEnd   float64

	Background RGB
}

// Validate checks the required fields, applies the documented defaults and
// clamps for the optional ones, and returns a typed error for anything that
// would make the render impossible. It must be called (directly or via
// Render) before the configuration is used.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Value: c.Width, Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Value: c.Height, Reason: "must be positive"}
	}
	if c.CellSize <= 0 || math.IsNaN(c.CellSize) {
		return &ConfigError{Field: "cell_size", Value: c.CellSize, Reason: "must be positive"}
	}
	if c.MarginFactor < 0 || math.IsNaN(c.MarginFactor) {
		return &ConfigError{Field: "margin_factor", Value: c.MarginFactor, Reason: "must be non-negative"}
	}
	if c.Seeding == "" {
		return &ConfigError{Field: "seeding", Value: c.Seeding, Reason: "required"}
	}
	if c.Seeding != SeedGrid && c.Seeding != SeedRandom {
		return &ConfigError{Field: "seeding", Value: c.Seeding, Reason: `must be "grid" or "random"`}
	}
	if c.Density <= 0 || math.IsNaN(c.Density) || math.IsInf(c.Density, 0) {
		return &ConfigError{Field: "density", Value: c.Density, Reason: "must be positive and finite"}
	}
	if c.MaxLength < 0 {
		return &ConfigError{Field: "max_length", Value: c.MaxLength, Reason: "must be non-negative"}
	}
	if c.StepSize <= 0 || math.IsNaN(c.StepSize) {
		return &ConfigError{Field: "step_size", Value: c.StepSize, Reason: "must be positive"}
	}
	if c.AngleGain < 0 || c.AngleGain > 1 || math.IsNaN(c.AngleGain) {
		return &ConfigError{Field: "angle_gain", Value: c.AngleGain, Reason: "must be in [0,1]"}
	}
	if c.Jitter < 0 || math.IsNaN(c.Jitter) {
		return &ConfigError{Field: "jitter", Value: c.Jitter, Reason: "must be non-negative"}
	}
	if len(c.LUT) == 0 {
		return &ColorLookupError{Length: 0}
	}

	// Optional fields: defaults and clamps.
	if c.NoiseScale == 0 {
		c.NoiseScale = DefaultNoiseScale
	}
	if c.NoiseScale < minNoiseScale {
		c.NoiseScale = minNoiseScale
	}
	if c.Octaves == 0 {
		c.Octaves = DefaultOctaves
	}
	if c.Octaves < 1 {
		c.Octaves = 1
	}
	if c.Octaves > maxOctaves {
		c.Octaves = maxOctaves
	}
	if c.PaletteAxis == "" {
		c.PaletteAxis = DefaultAxis
	}
	switch c.PaletteAxis {
	case AxisX, AxisY, AxisField, AxisRandom:
	default:
		return &ConfigError{Field: "palette_axis", Value: c.PaletteAxis, Reason: `must be "x", "y", "field" or "random"`}
	}
	if c.PaletteWithinStroke < 0 {
		c.PaletteWithinStroke = 0
	}
	if c.PaletteWithinStroke > 1 {
		c.PaletteWithinStroke = 1
	}
	if c.QuantizeSteps < 0 {
		c.QuantizeSteps = 0
	}
	if c.Swirl < 0 {
		c.Swirl = 0
	}

	return nil
}

// Bounds is the drawable rectangle: the canvas minus the margin on all sides.
type Bounds struct {
	X0, Y0, X1, Y1 float64
}

// W returns the bounds width.
func (b Bounds) W() float64 { return b.X1 - b.X0 }

// H returns the bounds height.
func (b Bounds) H() float64 { return b.Y1 - b.Y0 }

// Area returns the bounds area.
func (b Bounds) Area() float64 { return b.W() * b.H() }

// Contains reports whether (x, y) lies inside the bounds, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// computeBounds derives the drawable rectangle from the canvas size and
// margin factor. A margin consuming half or more of the smaller dimension is
// a BoundsError: nothing could be drawn.
func computeBounds(c *Config) (Bounds, error) {
	margin := math.Min(float64(c.Width), float64(c.Height)) * c.MarginFactor
	b := Bounds{
		X0: margin,
		Y0: margin,
		X1: float64(c.Width) - margin,
		Y1: float64(c.Height) - margin,
	}
	if b.X1 <= b.X0 || b.Y1 <= b.Y0 {
		return Bounds{}, &BoundsError{Margin: margin, Width: c.Width, Height: c.Height}
	}
	return b, nil
}
