package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SW-Perse/artkathon/pkg/dataset"
	"github.com/SW-Perse/artkathon/pkg/observability"
)

// maxSlugLen bounds artifact filenames on long poem titles.
const maxSlugLen = 40

// Batch renders a dataset into opts.OutDir using a bounded worker pool.
// Items that fail to map or render are reported and skipped, never fatal.
// onItem, if non-nil, is invoked once per finished item from the worker
// goroutines; calls are serialized.
func (r *Runner) Batch(ctx context.Context, items []dataset.Item, opts Options, onItem func(ItemResult)) (*BatchStats, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}

	stats := &BatchStats{
		RunID: uuid.NewString()[:8],
		Total: len(items),
	}
	start := time.Now()
	observability.Batch().OnBatchStart(ctx, stats.RunID, stats.Total)
	r.Logger.Info("starting batch run",
		"run", stats.RunID,
		"items", stats.Total,
		"workers", opts.Workers,
		"out", opts.OutDir)

	jobs := make(chan dataset.Item)
	var wg sync.WaitGroup
	var mu sync.Mutex

	finish := func(res ItemResult) {
		mu.Lock()
		defer mu.Unlock()
		if res.Err != nil {
			stats.Failed++
		} else {
			stats.Rendered++
			if res.CacheHit {
				stats.CacheHits++
			}
		}
		observability.Batch().OnItemComplete(ctx, stats.RunID, res.Title, res.Err)
		if onItem != nil {
			onItem(res)
		}
	}

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				finish(r.renderToFile(ctx, item, opts))
			}
		}()
	}

	var ctxErr error
dispatch:
	for _, item := range items {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- item:
		}
	}
	close(jobs)
	wg.Wait()

	stats.Duration = time.Since(start)
	observability.Batch().OnBatchComplete(ctx, stats.RunID, stats.Rendered, stats.Failed, stats.Duration)
	r.Logger.Info("batch run finished",
		"run", stats.RunID,
		"rendered", stats.Rendered,
		"failed", stats.Failed,
		"cached", stats.CacheHits,
		"duration", stats.Duration)

	return stats, ctxErr
}

// renderToFile runs the per-item pipeline and writes the artifact to disk.
func (r *Runner) renderToFile(ctx context.Context, item dataset.Item, opts Options) ItemResult {
	res := ItemResult{Index: item.Index, Title: item.Title}

	out, err := r.RenderItem(ctx, item, opts)
	if err != nil {
		r.Logger.Warn("skipping item", "title", item.Title, "error", err)
		res.Err = err
		return res
	}
	res.Emotion = out.Emotion
	res.Colormap = out.Colormap
	res.CacheHit = out.CacheHit

	dir := opts.OutDir
	if opts.ByGenre {
		genre := item.Genre
		if genre == "" {
			genre = "unknown"
		}
		dir = filepath.Join(dir, Slug(genre))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			res.Err = fmt.Errorf("create genre directory: %w", err)
			return res
		}
	}

	res.Path = filepath.Join(dir, ArtifactName(item.Index, item.Title, out.Colormap))
	if err := os.WriteFile(res.Path, out.PNG, 0o644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", res.Path, err)
	}
	return res
}

// ArtifactName builds the output filename for a rendered poem:
// a zero-padded index, the slugified title, and the colormap used.
func ArtifactName(index int, title, colormap string) string {
	return fmt.Sprintf("%04d_%s_%s.png", index, Slug(title), colormap)
}

// Slug reduces a title to a filesystem-safe lowercase token.
func Slug(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "untitled"
	}
	return out
}
