package batch

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/metrics"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/storage"
)

const (
	pngName = "frame.png"
	svgName = "frame.svg"
	kind    = "gallery"
)

type Result struct {
	Entry   Entry
	ID      string // export id, empty without a store
	Summary scene.Summary
	Metrics map[string]float64
	Elapsed time.Duration
	Err     error
}

// Runner renders gallery entries on a fixed pool of workers. A nil
// store renders and scores without writing anything.
type Runner struct {
	base    *config.Config
	store   *storage.Store
	workers int
	logger  *log.Logger
}

func NewRunner(base *config.Config, store *storage.Store, workers int, logger *log.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{base: base, store: store, workers: workers, logger: logger}
}

// Run renders every entry and returns results in entry order. Entry
// failures are reported per result; the returned error is only set
// when ctx ends before all entries ran.
func (r *Runner) Run(ctx context.Context, g *Gallery) ([]Result, error) {
	results := make([]Result, len(g.Entries))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(r.workers, len(g.Entries)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.render(g, g.Entries[idx])
				res := results[idx]
				if res.Err != nil {
					r.logger.Warn("entry failed", "entry", res.Entry.Label(), "err", res.Err)
					continue
				}
				r.logger.Info("entry rendered",
					"entry", res.Entry.Label(),
					"id", res.ID,
					"elapsed", res.Elapsed.Round(time.Millisecond),
				)
			}
		}()
	}

	var err error
	next := 0
feed:
	for ; next < len(g.Entries); next++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- next:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(g.Entries); i++ {
		results[i] = Result{Entry: g.Entries[i], Err: err}
	}
	return results, err
}

func (r *Runner) configFor(g *Gallery, e Entry) (*config.Config, error) {
	var cfg *config.Config
	if e.Preset != "" {
		p, err := config.GetPreset(e.Preset)
		if err != nil {
			return nil, err
		}
		p.DataDir = r.base.DataDir
		p.Size = r.base.Size
		cfg = p
	} else {
		c := *r.base
		cfg = &c
	}
	if g.Size > 0 {
		cfg.Size = g.Size
	}
	if e.Seed != "" {
		cfg.Seed = e.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Runner) render(g *Gallery, e Entry) Result {
	res := Result{Entry: e}
	start := time.Now()

	cfg, err := r.configFor(g, e)
	if err != nil {
		res.Err = err
		return res
	}
	sc, err := scene.Compose(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	dt := 1 / float64(cfg.FPS)
	for i := 0; i < e.Advance; i++ {
		sc.Advance(dt)
	}

	f := sc.Frame()
	res.Summary = sc.Summary()
	res.Metrics = make(map[string]float64)
	for _, m := range metrics.Defaults() {
		m.Observe(f)
		res.Metrics[m.Name()] = m.Value()
	}

	if r.store != nil {
		raster := render.NewRaster(cfg.Size)
		raster.Caption = e.Caption
		img := raster.Render(f)

		sess, err := r.store.Begin(kind, sc)
		if err != nil {
			res.Err = err
			return res
		}
		if err := write(sess, pngName, func(w io.Writer) error { return render.WritePNG(w, img) }); err != nil {
			res.Err = err
			return res
		}
		if e.SVG {
			if err := write(sess, svgName, func(w io.Writer) error { return render.WriteSVG(w, f, cfg.Size) }); err != nil {
				res.Err = err
				return res
			}
		}
		if err := sess.Commit(); err != nil {
			res.Err = err
			return res
		}
		res.ID = sess.ID()
	}

	res.Elapsed = time.Since(start)
	return res
}

func write(sess *storage.Session, name string, fn func(w io.Writer) error) error {
	f, err := sess.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("batch: write %s: %w", name, err)
	}
	return f.Close()
}

// Rank orders successful results by metric, highest first, and drops
// failures.
func Rank(results []Result, metric string) []Result {
	ranked := make([]Result, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if _, ok := res.Metrics[metric]; !ok {
			continue
		}
		ranked = append(ranked, res)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metrics[metric] > ranked[j].Metrics[metric]
	})
	return ranked
}
