package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SW-Perse/artkathon/pkg/cache"
	"github.com/SW-Perse/artkathon/pkg/dataset"
	"github.com/SW-Perse/artkathon/pkg/feature"
)

func testVector() []float64 {
	return []float64{0.1, 1.0, 0.2, 2.2, 2.267, 1.0, 0.25, 0.264, 0.287, 0.814, 22.0, 0.4, 0.75, 0.1}
}

func testItem(index int) dataset.Item {
	return dataset.Item{
		Index:  index,
		Title:  "Still Night",
		Genre:  "joy",
		Vector: testVector(),
	}
}

// smallOpts keeps test renders fast.
func smallOpts() Options {
	return Options{Width: 120, Height: 120, Workers: 2}
}

func TestValidateScheme(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
	}{
		{"very_smooth", false},
		{"expressive", false},
		{"wild", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateScheme(tt.scheme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateScheme(%q) error = %v, wantErr %v", tt.scheme, err, tt.wantErr)
		}
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"natural", false},
		{"sharp", false},
		{"preferred", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if opts.Scheme != DefaultScheme {
		t.Errorf("Scheme = %q", opts.Scheme)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q", opts.Style)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("dimensions = %dx%d", opts.Width, opts.Height)
	}
	if opts.Workers < 1 || opts.Workers > MaxWorkers {
		t.Errorf("Workers = %d", opts.Workers)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Workers != before.Workers || opts.Scheme != before.Scheme {
		t.Error("second validation should not change options")
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad scheme", Options{Scheme: "nope"}},
		{"bad style", Options{Style: "nope"}},
		{"negative width", Options{Width: -1, Height: 100}},
		{"negative limit", Options{Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOptionsWorkersCapped(t *testing.T) {
	opts := Options{Workers: 100}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Workers != MaxWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, MaxWorkers)
	}
}

func TestRenderItemCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	first, err := runner.RenderItem(ctx, testItem(0), smallOpts())
	if err != nil {
		t.Fatalf("RenderItem: %v", err)
	}
	if first.CacheHit {
		t.Error("first render should miss the cache")
	}
	if len(first.PNG) == 0 {
		t.Fatal("empty artifact")
	}
	if first.Emotion == "" || first.Colormap == "" {
		t.Errorf("missing palette info: %+v", first)
	}
	if len(first.Display) == 0 || first.Display[0][0] != '#' {
		t.Errorf("Display = %v", first.Display)
	}

	second, err := runner.RenderItem(ctx, testItem(0), smallOpts())
	if err != nil {
		t.Fatalf("second RenderItem: %v", err)
	}
	if !second.CacheHit {
		t.Error("second render should hit the cache")
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("cached artifact should match the fresh one")
	}

	// Refresh skips the cache read
	opts := smallOpts()
	opts.Refresh = true
	third, err := runner.RenderItem(ctx, testItem(0), opts)
	if err != nil {
		t.Fatalf("refresh RenderItem: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should not report a cache hit")
	}
	if !bytes.Equal(first.PNG, third.PNG) {
		t.Error("deterministic render should reproduce the same artifact")
	}
}

func TestRenderItemSeedOverride(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	base, err := runner.RenderItem(ctx, testItem(0), smallOpts())
	if err != nil {
		t.Fatal(err)
	}

	opts := smallOpts()
	seed := int64(9999)
	opts.Seed = &seed
	reseeded, err := runner.RenderItem(ctx, testItem(0), opts)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(base.PNG, reseeded.PNG) {
		t.Error("seed override should change the artwork")
	}
}

func TestRenderItemBadVector(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	item := dataset.Item{Title: "broken", Vector: []float64{1, 2}}
	if _, err := runner.RenderItem(context.Background(), item, smallOpts()); err == nil {
		t.Error("expected mapping error")
	}
}

func TestRunnerVectorCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	poem := feature.Poem{Title: "Still Night", Text: "the sun\nthe sun", Poet: "basho", Genre: "joy"}
	v1, err := runner.Vector(ctx, poem)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := runner.Vector(ctx, poem)
	if err != nil {
		t.Fatal(err)
	}
	if len(v1) != feature.Dim || len(v2) != feature.Dim {
		t.Fatalf("lengths = %d, %d", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Errorf("component %d differs: %v vs %v", i, v1[i], v2[i])
		}
	}
}

func TestBatch(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	items := []dataset.Item{
		testItem(0),
		{Index: 1, Title: "broken", Vector: []float64{1}},
		testItem(2),
	}

	opts := smallOpts()
	opts.OutDir = t.TempDir()

	var seen int
	stats, err := runner.Batch(ctx, items, opts, func(ItemResult) { seen++ })
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if stats.Total != 3 || stats.Rendered != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if seen != 3 {
		t.Errorf("onItem called %d times, want 3", seen)
	}
	if stats.RunID == "" {
		t.Error("missing run ID")
	}

	entries, err := os.ReadDir(opts.OutDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("wrote %d files, want 2", len(entries))
	}
}

func TestBatchByGenre(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := smallOpts()
	opts.OutDir = t.TempDir()
	opts.ByGenre = true

	items := []dataset.Item{testItem(0)}
	if _, err := runner.Batch(context.Background(), items, opts, nil); err != nil {
		t.Fatalf("Batch: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(opts.OutDir, "joy", "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("genre subdir should hold the artifact, found %v", matches)
	}
}

func TestBatchLimit(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := smallOpts()
	opts.OutDir = t.TempDir()
	opts.Limit = 1

	items := []dataset.Item{testItem(0), testItem(1), testItem(2)}
	stats, err := runner.Batch(context.Background(), items, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 1 || stats.Rendered != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBatchRequiresOutDir(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Batch(context.Background(), nil, smallOpts(), nil); err == nil {
		t.Error("expected error without output directory")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Still Night", "still_night"},
		{"the sun, the sun!", "the_sun_the_sun"},
		{"---", "untitled"},
		{"", "untitled"},
		{"Déjà vu", "d_j_vu"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtifactName(t *testing.T) {
	got := ArtifactName(7, "Still Night", "rainbow")
	if got != "0007_still_night_rainbow.png" {
		t.Errorf("ArtifactName = %q", got)
	}
}
