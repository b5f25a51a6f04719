package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMass        = 1.0
	DefaultRestitution = 1.0
	DefaultFrameRate   = 60

	DefaultVelocity1 = 5.0
	DefaultVelocity2 = -5.0
	DefaultPosition1 = -50.0
	DefaultPosition2 = 50.0

	// Input bounds enforced at the API boundary, matching the control
	// ranges of the simulator UI.
	MaxMass     = 2.0
	MaxVelocity = 20.0
)

// Config describes a collision scenario: the two particles, the restitution
// setting, and how to animate it.
type Config struct {
	Particle1   ParticleConfig `yaml:"particle1"`
	Particle2   ParticleConfig `yaml:"particle2"`
	Restitution float64        `yaml:"restitution"`
	FrameRate   int            `yaml:"fps"`
}

// ParticleConfig is one particle's configured mass, velocity, and layout
// position.
type ParticleConfig struct {
	Mass     float64 `yaml:"mass"`
	Velocity float64 `yaml:"velocity"`
	Position float64 `yaml:"position"`
}

func DefaultConfig() *Config {
	return &Config{
		Particle1: ParticleConfig{
			Mass:     DefaultMass,
			Velocity: DefaultVelocity1,
			Position: DefaultPosition1,
		},
		Particle2: ParticleConfig{
			Mass:     DefaultMass,
			Velocity: DefaultVelocity2,
			Position: DefaultPosition2,
		},
		Restitution: DefaultRestitution,
		FrameRate:   DefaultFrameRate,
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
	if err := cfg.Validate(); err != nil {
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

// Validate checks the scenario against the control bounds.
func (c *Config) Validate() error {
	for name, p := range map[string]ParticleConfig{"particle1": c.Particle1, "particle2": c.Particle2} {
		if p.Mass <= 0 {
			return fmt.Errorf("config: %s mass must be positive, got %g", name, p.Mass)
		}
		if p.Velocity < -MaxVelocity || p.Velocity > MaxVelocity {
			return fmt.Errorf("config: %s velocity must be in [%g, %g], got %g", name, -MaxVelocity, MaxVelocity, p.Velocity)
		}
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("config: restitution must be in [0, 1], got %g", c.Restitution)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FrameRate)
	}
	return nil
}
