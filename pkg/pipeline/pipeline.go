// Package pipeline provides the core rendering pipeline for Artkathon.
//
// This package implements the complete map → render → encode pipeline that
// can be used by CLI, API, and batch components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Map: Turn a poem's feature vector into a render configuration
//  2. Render: Trace strokes through the flow field and rasterize them
//  3. Encode: Produce the PNG artifact
//
// Batch runs fan the per-item pipeline out over a worker pool and write the
// artifacts to disk.
//
// # Usage
//
// Create a Runner and render one poem:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Scheme: "expressive", Style: "natural"}
//	result, err := runner.RenderItem(ctx, item, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SW-Perse/artkathon/pkg/palette"
	"github.com/SW-Perse/artkathon/pkg/params"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultWidth is the default artwork width in pixels.
	DefaultWidth = params.DefaultWidth

	// DefaultHeight is the default artwork height in pixels.
	DefaultHeight = params.DefaultHeight

	// DefaultScheme is the default color scheme.
	DefaultScheme = palette.DefaultScheme

	// DefaultStyle is the default style bias.
	DefaultStyle = params.StyleNatural

	// MaxWorkers caps the batch worker pool regardless of CPU count.
	MaxWorkers = 8
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mapping options
	Scheme string `json:"scheme,omitempty"`
	Style  string `json:"style,omitempty"`
	Seed   *int64 `json:"seed,omitempty"` // overrides the vector-derived seed

	// Render options
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Cache options
	Refresh bool `json:"refresh,omitempty"` // skip cache reads, overwrite entries

	// Batch options
	OutDir  string `json:"out_dir,omitempty"`
	Limit   int    `json:"limit,omitempty"` // 0 renders the whole dataset
	Workers int    `json:"workers,omitempty"`
	ByGenre bool   `json:"by_genre,omitempty"` // group artifacts in per-genre subdirectories

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a single-item pipeline run.
type Result struct {
	// Title is the poem title the artwork was rendered for.
	Title string

	// Emotion and Colormap describe the palette choice the vector mapped to.
	Emotion  string
	Colormap string

	// Display holds the reduced palette swatch for UI output.
	Display []string

	// PNG is the encoded artifact.
	PNG []byte

	// CacheHit is true when the artifact came from cache.
	CacheHit bool

	// Stats contains timing information for a fresh render.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RenderTime time.Duration
	EncodeTime time.Duration
}

// BatchStats summarizes a batch run.
type BatchStats struct {
	RunID     string
	Total     int
	Rendered  int
	Failed    int
	CacheHits int
	Duration  time.Duration
}

// ItemResult reports the outcome of one batch item.
type ItemResult struct {
	Index    int
	Title    string
	Path     string
	Emotion  string
	Colormap string
	CacheHit bool
	Err      error
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateScheme checks that a color scheme name is known.
func ValidateScheme(scheme string) error {
	if !palette.Known(scheme) {
		return fmt.Errorf("invalid scheme: %q (must be one of: %v)", scheme, palette.Names())
	}
	return nil
}

// ValidateStyle checks that a style bias is known.
func ValidateStyle(style string) error {
	if !params.ValidStyle(style) {
		return fmt.Errorf("invalid style: %q (must be one of: natural, sharp, preferred)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the pipeline.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Scheme == "" {
		o.Scheme = DefaultScheme
	}
	if err := ValidateScheme(o.Scheme); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("invalid dimensions: %dx%d", o.Width, o.Height)
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers()
	}
	if o.Workers > MaxWorkers {
		o.Workers = MaxWorkers
	}
	if o.Limit < 0 {
		return fmt.Errorf("invalid limit: %d", o.Limit)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > MaxWorkers {
		return MaxWorkers
	}
	if n < 1 {
		return 1
	}
	return n
}
