package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/storage"
)

// export writes one artefact either to outPath or into a new export
// directory, and reports where it went.
func export(sc *scene.Scene, kind, name string, write func(w io.Writer) error) error {
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}

	st := storage.New(sc.Config.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	sess, err := st.Begin(kind, sc)
	if err != nil {
		return err
	}
	f, err := sess.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	fmt.Printf("export id: %s\n", sess.ID())
	fmt.Printf("wrote %s\n", st.Path(sess.ID(), name))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	step(sc, advance)

	start := time.Now()
	r := render.NewRaster(sc.Config.Size)
	r.Caption = caption
	f := sc.Frame()
	img := r.Render(f)
	logger.Debug("frame rendered",
		"elapsed", time.Since(start),
		"streamlines", len(f.Streamlines),
		"contours", f.Stats.Contours,
		"closed", f.Stats.Closed,
	)
	return export(sc, "png", "frame.png", func(w io.Writer) error {
		return render.WritePNG(w, img)
	})
}

func runSVG(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	step(sc, advance)
	f := sc.Frame()
	return export(sc, "svg", "frame.svg", func(w io.Writer) error {
		return render.WriteSVG(w, f, sc.Config.Size)
	})
}

// runRecord renders frames into a GIF export until the frame limit is
// reached. An interrupt stops early and keeps what was captured.
func runRecord(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	cfg := sc.Config
	if cfg.Record.Frames == 0 {
		return errors.New("record: --frames must be positive")
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	sess, err := st.Begin("gif", sc)
	if err != nil {
		return err
	}
	out, err := sess.Create("scene.gif")
	if err != nil {
		return err
	}

	rec := render.NewRecorder(cfg.Record.Frames, cfg.Record.Skip, cfg.FPS)
	if err := rec.Start(out, sc.Scheme); err != nil {
		out.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raster := render.NewRaster(cfg.Size)
	dt := 1 / float64(cfg.FPS)
	start := time.Now()
	logger.Info("recording", "export", sess.ID(), "frames", cfg.Record.Frames, "skip", cfg.Record.Skip)

	for rendered := 0; ; rendered++ {
		if ctx.Err() != nil {
			logger.Warn("interrupted, keeping captured frames", "frames", rec.Frames())
			if err := rec.Stop(); err != nil {
				return err
			}
			break
		}
		done, err := rec.Capture(raster.Render(sc.Frame()))
		if err != nil {
			return err
		}
		if done {
			break
		}
		if rendered > 0 && rendered%50 == 0 {
			logger.Info("progress", "rendered", rendered, "kept", rec.Frames())
		}
		sc.Advance(dt)
	}

	if err := sess.Commit(); err != nil {
		return err
	}
	logger.Info("recording saved", "export", sess.ID(), "elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Printf("export id: %s\n", sess.ID())
	fmt.Printf("wrote %s\n", st.Path(sess.ID(), "scene.gif"))
	return nil
}

func listExports(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no exports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSEED\tTIME\tBODIES\tPALETTE\tFILES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Seed,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Summary.Bodies),
			run.Summary.Palette,
			strings.Join(run.Artefacts, ","),
		)
	}
	return w.Flush()
}

func showExport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
