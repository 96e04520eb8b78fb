// Package pkg provides the core libraries for Artkathon generative art.
//
// # Overview
//
// Artkathon turns poems into deterministic flow-field artworks. A poem is
// reduced to a 14-dimensional feature vector, the vector is mapped onto
// rendering parameters and an emotion-matched palette, and a flow-field
// renderer paints the final image. The pkg directory is organized into:
//
//  1. [flowfield] - Flow-field renderer (noise, angle grid, stroke tracing, color)
//  2. [feature] - Poem feature extraction (14-dimensional vectors)
//  3. [params] - Feature vector to renderer parameter mapping
//  4. [palette] - Emotion-keyed color schemes and colormap lookup tables
//  5. [dataset] - CSV dataset loading and vector serialization
//  6. [pipeline] - Orchestration (map → render → encode), batching, caching
//  7. [cache] - Cache backends (file, Redis) and key derivation
//  8. [observability] - Pluggable render, batch, and cache hooks
//
// # Architecture
//
// The typical data flow through Artkathon:
//
//	Poem (title, text, poet, genre)
//	         ↓
//	    [feature] package (extract 14-dimensional vector)
//	         ↓
//	    [params] + [palette] packages (map vector to config and colormap)
//	         ↓
//	    [flowfield] package (trace strokes over a noise-driven angle grid)
//	         ↓
//	    PNG output
//
// # Quick Start
//
// Render a vectorized poem to a PNG:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/SW-Perse/artkathon/pkg/cache"
//	    "github.com/SW-Perse/artkathon/pkg/dataset"
//	    "github.com/SW-Perse/artkathon/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	vec, _ := dataset.ParseVector("[0.1, 1.0, 0.2, 2.2, 2.267, 1.0, 0.25, 0.264, 0.287, 0.814, 22.0, 0.4, 0.75, 0.1]")
//	res, _ := runner.RenderItem(context.Background(), dataset.Item{
//	    Title:  "Still Night",
//	    Genre:  "joy",
//	    Vector: vec,
//	}, pipeline.Options{})
//	_ = os.WriteFile("still_night.png", res.PNG, 0o644)
//
// # Main Packages
//
// ## Rendering
//
// [flowfield] - The renderer itself. Builds a multi-octave Perlin noise
// field, derives an angle grid (optionally swirled and quantized), traces
// strokes through it, and colors them through a lookup table. Rendering is
// deterministic for a given [flowfield.Config].
//
// [palette] - Named colormaps and the three color schemes (very_smooth,
// expressive, wild) that key sampling ranges to poem emotions.
//
// ## Mapping
//
// [feature] - Poem analysis: syllable counts, lexical measures, and genre
// encoding packed into a fixed-width vector.
//
// [params] - Translates a feature vector into a [flowfield.Config], a
// palette choice, and an emotion label. Also hosts the natural/sharp
// style presets.
//
// ## Data
//
// [dataset] - Loads both raw poem CSVs and pre-vectorized CSVs, and writes
// vector files back out for reuse.
//
// ## Infrastructure
//
// [pipeline] - Complete render pipeline used by the CLI and the HTTP
// server. Handles option validation, per-item rendering with cache
// lookups, and concurrent batch runs over datasets.
//
// [cache] - Cache interface with file and Redis backends plus a no-op
// backend for testing. Keys are derived from render configs and poem
// content so identical inputs reuse identical artifacts.
//
// [observability] - Hook interfaces for render, batch, and cache events
// with no-op defaults and a process-global registry.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/flowfield/...      # Specific package
//
// [flowfield]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/flowfield
// [feature]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/feature
// [params]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/params
// [palette]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/palette
// [dataset]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/dataset
// [pipeline]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/cache
// [observability]: https://pkg.go.dev/github.com/SW-Perse/artkathon/pkg/observability
package pkg
