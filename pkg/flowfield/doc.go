// Package flowfield implements the deterministic flow-field renderer at the
// heart of Artkathon.
//
// A render turns a single Config into a raster image: coherent 2D gradient
// noise is synthesized over a grid, converted into a field of direction
// angles (optionally distorted by swirl and angular quantization), and
// brush-like strokes are traced through that field from seeded start points.
// Stroke color is looked up from a precomputed color LUT; stroke width is
// interpolated along the stroke.
//
// # Determinism
//
// Every pseudo-random draw in one render comes from state scoped to that
// call: the noise lattice uses sources derived from Config.Seed (one per
// octave), and seeding, jitter and the "random" palette axis share a single
// *rand.Rand created for the render. Two renders of the same Config with a
// seed set produce byte-identical rasters, and independent renders are safe
// to run concurrently.
//
// # Errors
//
// Unrecoverable configuration problems (empty grid, non-positive density,
// zero-length LUT, a margin that consumes the whole canvas) surface as typed
// errors before any pixel is touched. Numeric edge cases that appear
// mid-render - a stroke that immediately exits the bounds, an out-of-range
// field sample, a one-point stroke - are handled by documented local
// fallbacks so a single degenerate stroke never aborts the render.
//
// The package performs no I/O; encoding and persistence belong to callers.
package flowfield
