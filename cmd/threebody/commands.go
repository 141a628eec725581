package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/threebody/internal/analysis"
	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/gui"
	"github.com/san-kum/threebody/internal/metrics"
	"github.com/san-kum/threebody/internal/server"
	"github.com/san-kum/threebody/internal/storage"
	"github.com/san-kum/threebody/internal/tracer"
	"github.com/san-kum/threebody/internal/vec"
)

const spectrumSamples = 128

func runGUI(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	gui.Run(sc, storage.New(sc.Config.DataDir), logger)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(sc, metrics.NewCollector(nil), logger)
	return srv.ListenAndServe(ctx)
}

func parsePoint(s string) (vec.Vec2, error) {
	var x, y float64
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &y); err != nil {
		return vec.Vec2{}, fmt.Errorf("bad point %q, want x,y: %w", s, err)
	}
	return vec.New(x, y), nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	a, err := parsePoint(start)
	if err != nil {
		return err
	}
	b, err := parsePoint(end)
	if err != nil {
		return err
	}

	fmt.Printf("seed: %s\n", sc.Config.Seed)
	fmt.Printf("bodies: %d  total mass: %.3f  reduced mass: %.3f\n\n", len(sc.Bodies), sc.TotalMass(), sc.ReducedMass())

	switch mode {
	case "line":
		p := analysis.NewProfile(sc.Field, a, b, samples)
		fmt.Println(p.Plot(width, height))
	case "spectrum":
		spec := analysis.OrbitSpectrum(sc.Field, sc.Config.Orbit.Radius, spectrumSamples)
		fmt.Println(asciigraph.Plot(spec[1:],
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption("potential harmonics on the orbit"),
		))
		fmt.Printf("\ndominant harmonic: %d\n", analysis.DominantHarmonic(spec))
	case "sweep":
		points := analysis.ClosureSweep(sc.Field, a, b, samples, sc.Config.Equipotential)
		fmt.Print(analysis.SweepToASCII(points, width/2))
	case "map":
		fmt.Print(analysis.PotentialMap(sc.Field, width, height*2))
	case "divergence":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEED\tDIVERGENCE")
		discs := tracer.BodyDiscs(sc.Bodies)
		for i := 0; i < samples; i++ {
			s := a.Lerp(b, float64(i)/float64(max(samples-1, 1)))
			d := analysis.Divergence(sc.Field, s, 1e-4, discs, sc.StreamStyle())
			fmt.Fprintf(w, "(%.3f, %.3f)\t%.4f\n", s.X, s.Y, d)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}

func runScene(cmd *cobra.Command, args []string) error {
	sc, err := composeScene(cmd)
	if err != nil {
		return err
	}
	sum := sc.Summary()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(sum)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	return fmt.Errorf("unknown format %q", format)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tRADIUS\tPALETTE\tARROWS")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		n, pal := "seeded", "seeded"
		if p.Bodies > 0 {
			n = fmt.Sprint(p.Bodies)
		}
		if p.Palette != "" {
			pal = p.Palette
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%v\n", name, n, p.Orbit.Radius, pal, p.Grid.Arrows)
	}
	return w.Flush()
}
