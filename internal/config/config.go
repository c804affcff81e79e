package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimestep       = 1.0 / 60.0
	DefaultMass           = 1.0
	DefaultDamping        = 0.8
	DefaultRestitution    = 0.3
	DefaultAmplitude      = 0.05
	DefaultFrequency      = 1.5
	DefaultBoundaryLimit  = 3.0
	DefaultForceFactor    = 0.2
	DefaultVelocityFactor = 0.7
	DefaultSplitRatio     = 0.7
	DefaultSplitOffset    = 0.3
	DefaultMinScale       = 0.05
	DefaultInitialScale   = 2.0
	DefaultFPS            = 60
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Seed      int64           `yaml:"seed"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Breathing BreathingConfig `yaml:"breathing"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Split     SplitConfig     `yaml:"split"`
	Scene     SceneConfig     `yaml:"scene"`
	View      ViewConfig      `yaml:"view"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type PhysicsConfig struct {
	Timestep       float64 `yaml:"timestep"`
	Gravity        Vec     `yaml:"gravity"`
	Mass           float64 `yaml:"mass"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	Collisions     bool    `yaml:"collisions"`
	Restitution    float64 `yaml:"restitution"`
}

type BreathingConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

type BoundaryConfig struct {
	Limit          float64 `yaml:"limit"`
	ForceFactor    float64 `yaml:"force_factor"`
	VelocityFactor float64 `yaml:"velocity_factor"`
}

type SplitConfig struct {
	Ratio          float64 `yaml:"ratio"`
	Offset         float64 `yaml:"offset"`
	PositionJitter float64 `yaml:"position_jitter"`
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedJitter    float64 `yaml:"speed_jitter"`
	LateralSpeed   float64 `yaml:"lateral_speed"`
	MinScale       float64 `yaml:"min_scale"`
	MaxObjects     int     `yaml:"max_objects"`
}

type SceneConfig struct {
	InitialScale float64 `yaml:"initial_scale"`
	RingRadius   float64 `yaml:"ring_radius"`
	RingTube     float64 `yaml:"ring_tube"`
	RingSpin     float64 `yaml:"ring_spin"`
	Metalness    float64 `yaml:"metalness"`
	Roughness    float64 `yaml:"roughness"`
}

type ViewConfig struct {
	FOV            float64 `yaml:"fov"`
	CameraDistance float64 `yaml:"camera_distance"`
	DampingFactor  float64 `yaml:"damping_factor"`
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	FPS            int     `yaml:"fps"`
	Theme          string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed: 1,
		Physics: PhysicsConfig{
			Timestep:       DefaultTimestep,
			Mass:           DefaultMass,
			LinearDamping:  DefaultDamping,
			AngularDamping: DefaultDamping,
			Collisions:     true,
			Restitution:    DefaultRestitution,
		},
		Breathing: BreathingConfig{
			Amplitude: DefaultAmplitude,
			Frequency: DefaultFrequency,
		},
		Boundary: BoundaryConfig{
			Limit:          DefaultBoundaryLimit,
			ForceFactor:    DefaultForceFactor,
			VelocityFactor: DefaultVelocityFactor,
		},
		Split: SplitConfig{
			Ratio:          DefaultSplitRatio,
			Offset:         DefaultSplitOffset,
			PositionJitter: 0.05,
			BaseSpeed:      0.05,
			SpeedJitter:    0.05,
			LateralSpeed:   0.025,
			MinScale:       DefaultMinScale,
		},
		Scene: SceneConfig{
			InitialScale: DefaultInitialScale,
			RingRadius:   3.2,
			RingTube:     0.06,
			RingSpin:     0.15,
			Metalness:    0.9,
			Roughness:    0.25,
		},
		View: ViewConfig{
			FOV:            75,
			CameraDistance: 8,
			DampingFactor:  0.05,
			MinDistance:    2,
			MaxDistance:    40,
			FPS:            DefaultFPS,
			Theme:          "petri",
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so a file only needs the
// keys it changes.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file on top of base, typically a preset. base is
// modified and returned.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Marshal() ([]byte, error) { return yaml.Marshal(c) }

func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{c.Physics.Timestep > 0, "physics.timestep must be positive"},
		{c.Physics.Mass > 0, "physics.mass must be positive"},
		{inUnit(c.Physics.LinearDamping), "physics.linear_damping must be in [0,1)"},
		{inUnit(c.Physics.AngularDamping), "physics.angular_damping must be in [0,1)"},
		{c.Physics.Restitution >= 0 && c.Physics.Restitution <= 1, "physics.restitution must be in [0,1]"},
		{c.Breathing.Amplitude >= 0, "breathing.amplitude must not be negative"},
		{c.Boundary.Limit > 0, "boundary.limit must be positive"},
		{c.Boundary.ForceFactor >= 0, "boundary.force_factor must not be negative"},
		{c.Boundary.VelocityFactor >= 0 && c.Boundary.VelocityFactor <= 1, "boundary.velocity_factor must be in [0,1]"},
		{c.Split.Ratio > 0 && c.Split.Ratio < 1, "split.ratio must be in (0,1)"},
		{c.Split.MinScale >= 0, "split.min_scale must not be negative"},
		{c.Split.MaxObjects >= 0, "split.max_objects must not be negative"},
		{c.Scene.InitialScale > 0, "scene.initial_scale must be positive"},
		{c.Scene.InitialScale > c.Breathing.Amplitude, "scene.initial_scale must exceed breathing.amplitude"},
		{c.View.FOV > 0 && c.View.FOV < 180, "view.fov must be in (0,180)"},
		{c.View.CameraDistance > 0, "view.camera_distance must be positive"},
		{c.View.FPS > 0, "view.fps must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}

func inUnit(v float64) bool { return v >= 0 && v < 1 }
