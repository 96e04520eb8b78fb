package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SW-Perse/artkathon/pkg/dataset"
	"github.com/SW-Perse/artkathon/pkg/feature"
	"github.com/SW-Perse/artkathon/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	title   string // poem title (also names the output file)
	text    string // poem text, unless a file argument or --vector is given
	poet    string // poet name
	genre   string // genre label
	vector  string // pre-computed feature vector, bracketed float list
	output  string // output file path
	scheme  string // color scheme name
	style   string // style bias
	width   int    // artwork width in pixels
	height  int    // artwork height in pixels
	seed    int64  // noise seed override
	noCache bool   // disable the cache entirely
	refresh bool   // ignore cached artwork, overwrite it
}

// newRenderCmd creates the render command for producing a single artwork.
// The poem text comes from a file argument, --text, or stdin; alternatively
// a pre-computed feature vector can be passed with --vector.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [poem-file]",
		Short: "Render a poem as flow field artwork",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return runRender(cmd, file, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "poem title")
	cmd.Flags().StringVar(&opts.text, "text", "", "poem text (alternative to a file argument)")
	cmd.Flags().StringVar(&opts.poet, "poet", "", "poet name")
	cmd.Flags().StringVar(&opts.genre, "genre", "", "genre label (fear, anger, sadness, love, joy, surprise)")
	cmd.Flags().StringVar(&opts.vector, "vector", "", "pre-computed feature vector, e.g. \"[0.1, ...]\"")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from the title)")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "color scheme: very_smooth, expressive (default), wild")
	cmd.Flags().StringVar(&opts.style, "style", "", "style bias: natural (default), sharp, preferred")
	cmd.Flags().IntVar(&opts.width, "width", 0, "artwork width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "artwork height in pixels")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "noise seed override")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func runRender(cmd *cobra.Command, file string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	item, err := buildItem(cmd, runner, file, opts)
	if err != nil {
		return err
	}

	pOpts := pipeline.Options{
		Scheme:  opts.scheme,
		Style:   opts.style,
		Width:   opts.width,
		Height:  opts.height,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	if cmd.Flags().Changed("seed") {
		seed := opts.seed
		pOpts.Seed = &seed
	}
	configFromContext(ctx).apply(&pOpts)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %q...", item.Title))
	spinner.Start()

	result, err := runner.RenderItem(ctx, item, pOpts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}

	out := opts.output
	if out == "" {
		out = pipeline.ArtifactName(0, item.Title, result.Colormap)
	}
	spinner.SetMessage(fmt.Sprintf("Writing %s...", out))
	if err := os.WriteFile(out, result.PNG, 0o644); err != nil {
		spinner.StopWithError(fmt.Sprintf("Write failed: %v", err))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %q", item.Title))
	printPalette(result.Emotion, result.Colormap, result.Display)
	printFile(out)
	printRenderStatus(result.CacheHit)
	return nil
}

// buildItem assembles the dataset item to render from flags, file, or stdin.
func buildItem(cmd *cobra.Command, runner *pipeline.Runner, file string, opts *renderOpts) (dataset.Item, error) {
	title := opts.title
	if title == "" {
		title = "untitled"
	}
	item := dataset.Item{Title: title, Poet: opts.poet, Genre: opts.genre}

	if opts.vector != "" {
		vec, err := dataset.ParseVector(opts.vector)
		if err != nil {
			return item, err
		}
		item.Vector = vec
		return item, nil
	}

	text := opts.text
	if text == "" && file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return item, fmt.Errorf("read poem: %w", err)
		}
		text = string(raw)
	}
	if strings.TrimSpace(text) == "" {
		return item, fmt.Errorf("no poem given: pass a file argument, --text, or --vector")
	}

	vec, err := runner.Vector(cmd.Context(), feature.Poem{
		Title: title,
		Text:  text,
		Poet:  opts.poet,
		Genre: opts.genre,
	})
	if err != nil {
		return item, err
	}
	item.Vector = vec
	return item, nil
}
