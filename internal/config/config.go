package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/threebody/internal/tracer"
)

const (
	DefaultSeed         = "threebody"
	DefaultSize         = 640
	DefaultFPS          = 60
	DefaultOrbitRadius  = 0.35
	DefaultOrbitPeriod  = 90.0
	DefaultMassMin      = 0.7
	DefaultMassMax      = 6.0
	DefaultGridSize     = 16
	DefaultOvershoot    = 1.05
	DefaultSeedsPerEdge = 16
	DefaultFrames       = 300
	DefaultAddr         = ":8080"
	DefaultStreamFPS    = 10
	DefaultDataDir      = "data"
)

var (
	ErrInvalidConfig = errors.New("config: invalid")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Seed    string `yaml:"seed"`
	Size    int    `yaml:"size"`
	FPS     int    `yaml:"fps"`
	Bodies  int    `yaml:"bodies"`  // 0 keeps the count drawn from the seed
	Palette string `yaml:"palette"` // empty draws one from the seed

	Orbit         OrbitConfig         `yaml:"orbit"`
	Moons         MoonConfig          `yaml:"moons"`
	Grid          GridConfig          `yaml:"grid"`
	Flow          FlowConfig          `yaml:"flow"`
	SeedsPerEdge  int                 `yaml:"seeds_per_edge"`
	Streamline    tracer.StreamStyle  `yaml:"streamline"`
	Equipotential tracer.ContourStyle `yaml:"equipotential"`

	Record  RecordConfig `yaml:"record"`
	Serve   ServeConfig  `yaml:"serve"`
	DataDir string       `yaml:"data_dir"`
}

type OrbitConfig struct {
	Radius  float64 `yaml:"radius"`
	Period  float64 `yaml:"period"`
	MassMin float64 `yaml:"mass_min"`
	MassMax float64 `yaml:"mass_max"`
}

type MoonConfig struct {
	Probability        float64 `yaml:"probability"`
	HistoryProbability float64 `yaml:"history_probability"`
	History            int     `yaml:"history"`
}

type GridConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Overshoot float64 `yaml:"overshoot"`
	Arrows    bool    `yaml:"arrows"`
}

// FlowConfig shapes the optional flow-texture background: Tracers
// particles advected Steps times through a seeded random flow on a
// Resolution x Resolution texture.
type FlowConfig struct {
	Probability float64 `yaml:"probability"`
	Resolution  int     `yaml:"resolution"`
	Tracers     int     `yaml:"tracers"`
	Steps       int     `yaml:"steps"`
	Alpha       float64 `yaml:"alpha"` // visits v shade as 1 - exp(-alpha*v)
	Scale       float64 `yaml:"scale"` // flow cells across the texture
}

type RecordConfig struct {
	Frames int `yaml:"frames"`
	Skip   int `yaml:"skip"` // capture every Skip-th frame
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed: DefaultSeed,
		Size: DefaultSize,
		FPS:  DefaultFPS,
		Orbit: OrbitConfig{
			Radius:  DefaultOrbitRadius,
			Period:  DefaultOrbitPeriod,
			MassMin: DefaultMassMin,
			MassMax: DefaultMassMax,
		},
		Moons: MoonConfig{
			Probability:        0.5,
			HistoryProbability: 0.05,
			History:            600,
		},
		Grid: GridConfig{
			Width:     DefaultGridSize,
			Height:    DefaultGridSize,
			Overshoot: DefaultOvershoot,
		},
		Flow: FlowConfig{
			Probability: 0.2,
			Resolution:  96,
			Tracers:     300,
			Steps:       64,
			Alpha:       0.35,
			Scale:       5,
		},
		SeedsPerEdge:  DefaultSeedsPerEdge,
		Streamline:    tracer.DefaultStreamStyle(),
		Equipotential: tracer.DefaultContourStyle(),
		Record:        RecordConfig{Frames: DefaultFrames, Skip: 2},
		Serve:         ServeConfig{Addr: DefaultAddr, FPS: DefaultStreamFPS},
		DataDir:       DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return invalid("size must be positive, got %d", c.Size)
	case c.FPS <= 0:
		return invalid("fps must be positive, got %d", c.FPS)
	case c.Bodies < 0 || c.Bodies > 8:
		return invalid("bodies must be in [0, 8], got %d", c.Bodies)
	case c.Orbit.Radius <= 0:
		return invalid("orbit radius must be positive")
	case c.Orbit.Period < 0:
		return invalid("orbit period must not be negative")
	case c.Orbit.MassMin <= 0 || c.Orbit.MassMax < c.Orbit.MassMin:
		return invalid("mass range [%g, %g] is empty or not positive", c.Orbit.MassMin, c.Orbit.MassMax)
	case c.Moons.Probability < 0 || c.Moons.Probability > 1:
		return invalid("moon probability must be in [0, 1]")
	case c.Moons.HistoryProbability < 0 || c.Moons.HistoryProbability > 1:
		return invalid("moon history probability must be in [0, 1]")
	case c.Moons.History < 0:
		return invalid("moon history must not be negative")
	case c.Flow.Probability < 0 || c.Flow.Probability > 1:
		return invalid("flow probability must be in [0, 1]")
	case c.Flow.Resolution < 2 || c.Flow.Tracers < 0 || c.Flow.Steps < 0:
		return invalid("flow needs a resolution of at least 2 and non-negative tracers and steps")
	case c.Flow.Alpha <= 0 || c.Flow.Scale <= 0:
		return invalid("flow alpha and scale must be positive")
	case c.Grid.Width < 2 || c.Grid.Height < 2:
		return invalid("grid must be at least 2x2, got %dx%d", c.Grid.Width, c.Grid.Height)
	case c.Grid.Overshoot <= 0:
		return invalid("grid overshoot must be positive")
	case c.SeedsPerEdge < 0:
		return invalid("seeds per edge must not be negative")
	case c.Streamline.Steps < 0 || c.Streamline.Delta <= 0:
		return invalid("streamline needs a non-negative budget and positive delta")
	case c.Streamline.MinSpeed <= 0 || c.Streamline.MaxSpeed < c.Streamline.MinSpeed:
		return invalid("streamline speed clamp [%g, %g] is invalid", c.Streamline.MinSpeed, c.Streamline.MaxSpeed)
	case c.Equipotential.Steps < 0 || c.Equipotential.Delta <= 0:
		return invalid("equipotential needs a non-negative budget and positive delta")
	case c.Record.Frames < 0 || c.Record.Skip < 1:
		return invalid("record needs non-negative frames and skip of at least 1")
	case c.Serve.FPS <= 0:
		return invalid("serve fps must be positive")
	}
	return nil
}
