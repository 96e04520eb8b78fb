package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SW-Perse/artkathon/pkg/dataset"
	"github.com/SW-Perse/artkathon/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	out     string // gallery output directory
	limit   int    // render at most this many items
	workers int    // worker pool size
	scheme  string // color scheme name
	style   string // style bias
	byGenre bool   // group artifacts into per-genre subdirectories
	noCache bool   // disable the cache entirely
	refresh bool   // ignore cached artwork, overwrite it
	plain   bool   // log lines instead of the live progress view
}

// newBatchCmd creates the batch command for rendering a whole dataset.
func newBatchCmd() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch <dataset.csv>",
		Short: "Render a poem dataset into a gallery directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default \"gallery\")")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "render at most N poems (0 = all)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "worker pool size (default: CPU count)")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "color scheme: very_smooth, expressive (default), wild")
	cmd.Flags().StringVar(&opts.style, "style", "", "style bias: natural (default), sharp, preferred")
	cmd.Flags().BoolVar(&opts.byGenre, "by-genre", false, "group artwork into per-genre subdirectories")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain log output instead of the live view")

	return cmd
}

func runBatch(cmd *cobra.Command, path string, opts *batchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	data, err := dataset.Load(path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d poems", len(data.Items)))
	if data.Skipped > 0 {
		printWarning("Skipped %d malformed rows", data.Skipped)
	}
	if len(data.Items) == 0 {
		return fmt.Errorf("dataset %s has no usable rows", path)
	}

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		Scheme:  opts.scheme,
		Style:   opts.style,
		OutDir:  opts.out,
		Limit:   opts.limit,
		Workers: opts.workers,
		ByGenre: opts.byGenre,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	configFromContext(ctx).apply(&pOpts)
	if pOpts.OutDir == "" {
		pOpts.OutDir = "gallery"
	}

	var stats *pipeline.BatchStats
	if opts.plain {
		stats, err = runner.Batch(ctx, data.Items, pOpts, func(res pipeline.ItemResult) {
			if res.Err != nil {
				logger.Warn("failed", "title", res.Title, "error", res.Err)
				return
			}
			logger.Info("rendered", "title", res.Title, "file", res.Path)
		})
	} else {
		stats, err = runBatchTUI(ctx, runner, data.Items, pOpts)
	}
	if err != nil && stats == nil {
		return err
	}

	printSuccess("Gallery written to %s", pOpts.OutDir)
	printBatchStats(stats.Rendered, stats.Failed, stats.CacheHits)
	printDetail("Run %s finished in %s", stats.RunID, stats.Duration.Round(time.Millisecond))
	if err != nil {
		printWarning("Run stopped early: %v", err)
	}
	return nil
}

// runBatchTUI drives the batch through the live bubbletea progress view.
func runBatchTUI(ctx context.Context, runner *pipeline.Runner, items []dataset.Item, opts pipeline.Options) (*pipeline.BatchStats, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := len(items)
	if opts.Limit > 0 && opts.Limit < total {
		total = opts.Limit
	}

	p := tea.NewProgram(NewBatchModel(total, cancel))
	go func() {
		stats, err := runner.Batch(runCtx, items, opts, func(res pipeline.ItemResult) {
			p.Send(itemMsg{res: res})
		})
		p.Send(batchDoneMsg{stats: stats, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(BatchModel)
	if m.Stats == nil {
		return nil, fmt.Errorf("batch aborted")
	}
	return m.Stats, m.Err
}
