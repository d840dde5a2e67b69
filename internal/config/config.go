package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the simulation tuning file. Every field has a compiled-in
// default; a level ships with a YAML override next to it when it wants
// different feel.
//
// Friction values are velocity retention in [0,1]: 0 grips completely,
// 1 is frictionless. Ground and platform contact are tuned separately on
// purpose — sticky ground with slippery platforms is part of the game feel,
// not an accident.
type Config struct {
	// Gravity is the per-tick downward impulse applied to every particle.
	Gravity float32 `yaml:"gravity"`

	// AirFriction is the per-tick multiplicative damping of the character
	// body's implied velocity.
	AirFriction float32 `yaml:"airFriction"`

	GroundFriction   float32 `yaml:"groundFriction"`
	PlatformFriction float32 `yaml:"platformFriction"`

	// SawKnockback scales blade contact velocity into ejection velocity.
	SawKnockback float32 `yaml:"sawKnockback"`

	// TickRate is fixed simulation ticks per second.
	TickRate int `yaml:"tickRate"`

	// MaxCatchUpTicks caps how many ticks a single frame may consume from
	// the accumulator; excess real time is discarded.
	MaxCatchUpTicks int `yaml:"maxCatchUpTicks"`

	// SafetyBounds is the half-extent of the cube around the origin
	// outside which runaway platforms are reset to their spawn pose.
	SafetyBounds float32 `yaml:"safetyBounds"`

	// KillPlaneY respawns the character when every particle falls below it.
	KillPlaneY float32 `yaml:"killPlaneY"`
}

// Default returns the tuning the game ships with.
func Default() *Config {
	return &Config{
		Gravity:          0.01,
		AirFriction:      0.98,
		GroundFriction:   0.2,
		PlatformFriction: 0.8,
		SawKnockback:     40,
		TickRate:         60,
		MaxCatchUpTicks:  5,
		SafetyBounds:     500,
		KillPlaneY:       -50,
	}
}

// Load reads a YAML tuning file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tickRate must be positive, got %d", c.TickRate)
	}
	if c.MaxCatchUpTicks <= 0 {
		return fmt.Errorf("config: maxCatchUpTicks must be positive, got %d", c.MaxCatchUpTicks)
	}
	if c.AirFriction <= 0 || c.AirFriction > 1 {
		return fmt.Errorf("config: airFriction must be in (0,1], got %g", c.AirFriction)
	}
	return nil
}
