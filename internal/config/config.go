package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigid2d/internal/contact"
	"github.com/san-kum/rigid2d/internal/space"
)

const (
	DefaultDt          = 1.0 / 60.0
	DefaultDuration    = 10.0
	DefaultIterations  = 8
	DefaultPosIters    = 3
	DefaultPersistence = 60
	DefaultGravityY    = -9.81
)

type Config struct {
	Scene    string        `yaml:"scene"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Gravity  GravityConfig `yaml:"gravity"`
	Solver   SolverConfig  `yaml:"solver"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SolverConfig struct {
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	Persistence        int     `yaml:"persistence"`
	WarmStart          bool    `yaml:"warm_start"`
	Baumgarte          float64 `yaml:"baumgarte"`
	Slop               float64 `yaml:"slop"`
	MaxCorrection      float64 `yaml:"max_correction"`
	BounceThreshold    float64 `yaml:"bounce_threshold"`
	MixFriction        string  `yaml:"mix_friction"`
	MixRestitution     string  `yaml:"mix_restitution"`
}

func DefaultConfig() *Config {
	solver := contact.DefaultSolverSettings()
	return &Config{
		Scene:    "stack",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Gravity:  GravityConfig{Y: DefaultGravityY},
		Solver: SolverConfig{
			VelocityIterations: DefaultIterations,
			PositionIterations: DefaultPosIters,
			Persistence:        DefaultPersistence,
			WarmStart:          true,
			Baumgarte:          solver.Baumgarte,
			Slop:               solver.Slop,
			MaxCorrection:      solver.MaxCorrection,
			BounceThreshold:    solver.BounceThreshold,
			MixFriction:        solver.MixFriction.String(),
			MixRestitution:     solver.MixRestitution.String(),
		},
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

// Settings converts the file representation into validated space settings.
// Any configuration error surfaces here, before a simulation starts.
func (c *Config) Settings() (space.Settings, error) {
	mixF, err := contact.ParseMixMode(c.Solver.MixFriction)
	if err != nil {
		return space.Settings{}, fmt.Errorf("config: %w", err)
	}
	mixR, err := contact.ParseMixMode(c.Solver.MixRestitution)
	if err != nil {
		return space.Settings{}, fmt.Errorf("config: %w", err)
	}

	set := space.Settings{
		Gravity:            mgl64.Vec2{c.Gravity.X, c.Gravity.Y},
		VelocityIterations: c.Solver.VelocityIterations,
		PositionIterations: c.Solver.PositionIterations,
		Persistence:        c.Solver.Persistence,
		Solver: contact.SolverSettings{
			MixFriction:     mixF,
			MixRestitution:  mixR,
			WarmStart:       c.Solver.WarmStart,
			Baumgarte:       c.Solver.Baumgarte,
			Slop:            c.Solver.Slop,
			MaxCorrection:   c.Solver.MaxCorrection,
			BounceThreshold: c.Solver.BounceThreshold,
		},
	}
	if c.Dt <= 0 {
		return space.Settings{}, fmt.Errorf("config: dt must be positive, got %v", c.Dt)
	}
	if c.Duration <= 0 {
		return space.Settings{}, fmt.Errorf("config: duration must be positive, got %v", c.Duration)
	}
	if err := set.Validate(); err != nil {
		return space.Settings{}, fmt.Errorf("config: %w", err)
	}
	return set, nil
}
