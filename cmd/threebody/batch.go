package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/threebody/internal/batch"
	"github.com/san-kum/threebody/internal/storage"
)

func runGallery(cmd *cobra.Command, args []string) error {
	g, err := batch.LoadGallery(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("rendering gallery", "name", g.Name, "entries", len(g.Entries))
	results, runErr := batch.NewRunner(cfg, storage.New(cfg.DataDir), workers, logger).Run(ctx, g)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tEXPORT\tPALETTE\tBODIES\tTIME")
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\t%v\t-\t-\t-\n", res.Entry.Label(), res.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			res.Entry.Label(), res.ID, res.Summary.Palette, len(res.Summary.Bodies), res.Elapsed.Round(time.Millisecond))
	}
	w.Flush()

	if runErr != nil {
		return runErr
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed", failed, len(results))
	}
	return nil
}

func runHunt(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := batch.NewRunner(cfg, nil, workers, logger).Run(ctx, batch.SeedRange(cfg.Seed, count))
	if err != nil {
		return err
	}
	ranked := batch.Rank(results, by)
	if len(ranked) == 0 {
		return fmt.Errorf("no seed produced metric %q", by)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\t%s\tPALETTE\tBODIES\n", by)
	for _, res := range ranked[:min(top, len(ranked))] {
		fmt.Fprintf(w, "%s\t%.4f\t%s\t%d\n",
			res.Entry.Seed, res.Metrics[by], res.Summary.Palette, len(res.Summary.Bodies))
	}
	return w.Flush()
}
