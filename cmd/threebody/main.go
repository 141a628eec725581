package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/storage"
	"github.com/san-kum/threebody/internal/viz"
)

var (
	configFile string
	presetName string
	fromExport string
	seed       string
	dataDir    string
	verbose    bool

	size     int
	bodies   int
	palette  string
	frames   int
	skip     int
	advance  int
	caption  string
	outPath  string
	addr     string
	streamFP int
	format   string
	menu     bool

	start   string
	end     string
	samples int
	mode    string
	width   int
	height  int

	workers int
	count   int
	by      string
	top     int

	logger *log.Logger
)

// main registers the commands and flags; with no subcommand it opens the
// terminal preset picker.
func main() {
	rootCmd := &cobra.Command{
		Use:   "threebody",
		Short: "generative gravity field artwork",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.Kitchen,
				Prefix:          "threebody",
			})
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, storage.New(cfg.DataDir), nil)
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "", "use preset configuration")
	pf.StringVar(&fromExport, "from", "", "reuse the config of an export")
	pf.StringVar(&seed, "seed", config.DefaultSeed, "seed string")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&size, "size", config.DefaultSize, "canvas size in pixels")
	pf.IntVar(&bodies, "bodies", 0, "body count (0 draws it from the seed)")
	pf.StringVar(&palette, "palette", "", "palette name (empty draws it from the seed)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to PNG",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&advance, "advance", 0, "frames to advance before rendering")
	renderCmd.Flags().StringVar(&caption, "caption", "", "caption drawn in the corner")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "write here instead of a new export")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record an animated GIF",
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to keep")
	recordCmd.Flags().IntVar(&skip, "skip", 2, "keep every n-th rendered frame")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "export the vector draw list as SVG",
		RunE:  runSVG,
	}
	svgCmd.Flags().IntVar(&advance, "advance", 0, "frames to advance before exporting")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "write here instead of a new export")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the scene in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&menu, "menu", false, "pick a preset and seed first")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate the scene in a window",
		RunE:  runGUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve a live preview over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().IntVar(&streamFP, "stream-fps", config.DefaultStreamFPS, "frames per second streamed")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot field statistics of the scene",
		RunE:  runProfile,
	}
	profileCmd.Flags().StringVar(&mode, "mode", "line", "line, spectrum, sweep, map or divergence")
	profileCmd.Flags().StringVar(&start, "start", "-1,0", "segment start x,y")
	profileCmd.Flags().StringVar(&end, "end", "1,0", "segment end x,y")
	profileCmd.Flags().IntVar(&samples, "samples", 200, "samples along the segment")
	profileCmd.Flags().IntVar(&width, "width", 80, "plot width")
	profileCmd.Flags().IntVar(&height, "height", 12, "plot height")

	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "print the composed scene",
		RunE:  runScene,
	}
	sceneCmd.Flags().StringVarP(&format, "format", "f", "yaml", "yaml or json")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list exports",
		RunE:  listExports,
	}

	showCmd := &cobra.Command{
		Use:   "show [export_id]",
		Short: "print export metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showExport,
	}

	galleryCmd := &cobra.Command{
		Use:   "gallery [file]",
		Short: "render every entry of a gallery file",
		Args:  cobra.ExactArgs(1),
		RunE:  runGallery,
	}
	galleryCmd.Flags().IntVar(&workers, "workers", 0, "parallel renders (0 uses every cpu)")

	huntCmd := &cobra.Command{
		Use:   "hunt",
		Short: "score a range of seeds and rank them",
		RunE:  runHunt,
	}
	huntCmd.Flags().IntVar(&count, "count", 16, "seeds to try")
	huntCmd.Flags().StringVar(&by, "by", "closure_rate", "metric to rank by")
	huntCmd.Flags().IntVar(&top, "top", 5, "rows to print")
	huntCmd.Flags().IntVar(&workers, "workers", 0, "parallel renders (0 uses every cpu)")

	rootCmd.AddCommand(renderCmd, recordCmd, svgCmd, liveCmd, guiCmd, serveCmd, profileCmd, sceneCmd, presetsCmd, listCmd, showCmd, galleryCmd, huntCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, export, config file and changed
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	var err error

	if presetName != "" {
		if cfg, err = config.GetPreset(presetName); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if fromExport != "" {
		dir := cfg.DataDir
		if cmd.Flags().Changed("data") {
			dir = dataDir
		}
		if cfg, err = storage.New(dir).LoadConfig(fromExport); err != nil {
			return nil, err
		}
	}
	if configFile != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("frames") {
		cfg.Record.Frames = frames
	}
	if flags.Changed("skip") {
		cfg.Record.Skip = skip
	}
	if flags.Changed("addr") {
		cfg.Serve.Addr = addr
	}
	if flags.Changed("stream-fps") {
		cfg.Serve.FPS = streamFP
	}
	return cfg, cfg.Validate()
}

func composeScene(cmd *cobra.Command) (*scene.Scene, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	sc, err := scene.Compose(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("scene composed",
		"seed", cfg.Seed,
		"bodies", len(sc.Bodies),
		"drawn", sc.Drawn,
		"palette", sc.Scheme.Name,
		"moons", len(sc.Moons),
		"draws", sc.Draws,
	)
	return sc, nil
}

// step advances sc by n frames at its frame rate.
func step(sc *scene.Scene, n int) {
	dt := 1 / float64(sc.Config.FPS)
	for i := 0; i < n; i++ {
		sc.Advance(dt)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	// the terminal belongs to the view, so it gets no logger
	if menu {
		return viz.RunInteractive(cfg, st, nil)
	}
	sc, err := scene.Compose(cfg)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(sc, st, nil))
}
