package flowfield

import (
	"image"
	"math/rand"
	"time"

	"github.com/fogleman/gg"
)

// Raster is the finished image: a Width×Height RGB buffer, row-major, three
// bytes per pixel. It is owned exclusively by the caller once Render returns.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// At returns the pixel color at (x, y).
func (r *Raster) At(x, y int) RGB {
	i := (y*r.Width + x) * 3
	return RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

// RGBA converts the raster to an image.RGBA, e.g. for PNG encoding.
func (r *Raster) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		img.Pix[j] = r.Pix[i]
		img.Pix[j+1] = r.Pix[i+1]
		img.Pix[j+2] = r.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Render runs one complete render: validate the configuration, build the
// angle field, seed the strokes, trace and draw each one, and return the
// raster. It is a pure synchronous computation with no internal concurrency;
// independent calls are safe to run in parallel.
//
// Configuration errors abort before any pixel is drawn. Degenerate strokes
// (fewer than two positions) are skipped, never fatal.
func Render(cfg Config) (*Raster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bounds, err := computeBounds(&cfg)
	if err != nil {
		return nil, err
	}
	grid, err := buildAngleGrid(&cfg, bounds)
	if err != nil {
		return nil, err
	}

	rng := renderRand(cfg.Seed)
	points := seedPoints(bounds, cfg.Seeding, cfg.Density, rng)

	dc := gg.NewContext(cfg.Width, cfg.Height)
	dc.SetRGB255(int(cfg.Background.R), int(cfg.Background.G), int(cfg.Background.B))
	dc.Clear()

	for _, start := range points {
		positions := traceStroke(start, grid, &cfg, rng)
		if len(positions) < 2 {
			continue
		}
		drawStroke(dc, positions, start, grid, &cfg, rng)
	}

	return fromImage(dc.Image(), cfg.Width, cfg.Height), nil
}

// renderRand creates the RNG for one render call. Seeding, jitter and the
// "random" palette axis all draw from this single stream; it is never shared
// between renders.
func renderRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// drawStroke draws the traced polyline segment by segment with interpolated
// width and LUT color. The colorizer is created after tracing so the RNG
// stream order matches seeding → jitter → palette draw per stroke.
func drawStroke(dc *gg.Context, positions []point, start point, grid *angleGrid, cfg *Config, rng *rand.Rand) {
	cz := newColorizer(start, grid, cfg, rng)

	segments := len(positions) - 1
	for i := 0; i < segments; i++ {
		t := 0.0
		if segments > 1 {
			t = float64(i) / float64(segments-1)
		}
		col := cz.at(t)
		width := cfg.WidthStart + (cfg.WidthEnd-cfg.WidthStart)*t

		dc.SetRGB255(int(col.R), int(col.G), int(col.B))
		dc.SetLineWidth(width)
		dc.DrawLine(positions[i].x, positions[i].y, positions[i+1].x, positions[i+1].y)
		dc.Stroke()
	}
}

// fromImage copies the drawing context's RGBA pixels into a packed RGB
// raster.
func fromImage(img image.Image, w, h int) *Raster {
	r := &Raster{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	rgba, ok := img.(*image.RGBA)
	if ok {
		for i, j := 0, 0; j < len(rgba.Pix); i, j = i+3, j+4 {
			r.Pix[i] = rgba.Pix[j]
			r.Pix[i+1] = rgba.Pix[j+1]
			r.Pix[i+2] = rgba.Pix[j+2]
		}
		return r
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			i := (y*w + x) * 3
			r.Pix[i] = byte(cr >> 8)
			r.Pix[i+1] = byte(cg >> 8)
			r.Pix[i+2] = byte(cb >> 8)
		}
	}
	return r
}
