package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SW-Perse/artkathon/pkg/cache"
	"github.com/SW-Perse/artkathon/pkg/dataset"
	"github.com/SW-Perse/artkathon/pkg/feature"
	"github.com/SW-Perse/artkathon/pkg/flowfield"
	"github.com/SW-Perse/artkathon/pkg/observability"
	"github.com/SW-Perse/artkathon/pkg/palette"
	"github.com/SW-Perse/artkathon/pkg/params"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RenderItem runs the complete map → render → encode pipeline for one poem,
// consulting the cache before doing any work.
func (r *Runner) RenderItem(ctx context.Context, item dataset.Item, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	mapped, err := r.mapItem(ctx, item, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Title:    item.Title,
		Emotion:  mapped.Emotion,
		Colormap: mapped.PaletteName,
		Display:  hexSwatch(mapped.Display),
	}

	// Try cache first (unless refresh requested)
	key := r.Keyer.RenderKey(mapped.Config)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			result.PNG = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	// Render
	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, item.Title, mapped.Config.Width, mapped.Config.Height)
	raster, err := flowfield.Render(mapped.Config)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, item.Title, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", item.Title, err)
	}

	r.Logger.Debug("rendered artwork",
		"title", item.Title,
		"emotion", mapped.Emotion,
		"colormap", mapped.PaletteName,
		"duration", result.Stats.RenderTime)

	// Encode
	encodeStart := time.Now()
	var buf bytes.Buffer
	err = png.Encode(&buf, raster.RGBA())
	result.Stats.EncodeTime = time.Since(encodeStart)
	observability.Render().OnEncodeComplete(ctx, item.Title, buf.Len(), result.Stats.EncodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", item.Title, err)
	}
	result.PNG = buf.Bytes()

	// Cache the artifact
	if err := r.Cache.Set(ctx, key, result.PNG, cache.TTLRender); err != nil {
		r.Logger.Warn("cache write failed", "title", item.Title, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", buf.Len())
	}

	return result, nil
}

// mapItem turns the item's feature vector into a concrete render
// configuration, applying scheme, style bias, and option overrides.
func (r *Runner) mapItem(ctx context.Context, item dataset.Item, opts Options) (*params.Mapped, error) {
	observability.Render().OnMapStart(ctx, item.Title)
	scheme := palette.Lookup(opts.Scheme)
	mapped, err := params.FromVector(item.Vector, scheme)
	if err == nil {
		params.ApplyStyle(mapped, opts.Style)
		mapped.Config.Width = opts.Width
		mapped.Config.Height = opts.Height
		if opts.Seed != nil {
			seed := *opts.Seed
			mapped.Config.Seed = &seed
		}
	}
	var emotion, colormap string
	if mapped != nil {
		emotion, colormap = mapped.Emotion, mapped.PaletteName
	}
	observability.Render().OnMapComplete(ctx, item.Title, emotion, colormap, err)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", item.Title, err)
	}
	return mapped, nil
}

// Vector returns the feature vector for a poem, caching the expensive
// encodings so a render service doesn't recompute them per request.
func (r *Runner) Vector(ctx context.Context, poem feature.Poem) ([]float64, error) {
	key := r.Keyer.VectorKey(poem.Title, poem.Text, poem.Poet, poem.Genre)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var vec []float64
		if err := json.Unmarshal(data, &vec); err == nil && len(vec) == feature.Dim {
			observability.Cache().OnCacheHit(ctx, "vector")
			return vec, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "vector")

	vec := feature.Vector(poem)
	if data, err := json.Marshal(vec); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLVector); err == nil {
			observability.Cache().OnCacheSet(ctx, "vector", len(data))
		}
	}
	return vec, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// hexSwatch formats display colors as hex strings for UI output.
func hexSwatch(colors []flowfield.RGB) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return out
}
