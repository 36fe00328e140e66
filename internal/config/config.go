// Package config provides YAML-based game configuration loading and
// difficulty presets for the chase game.
package config

import (
	"errors"
	"fmt"
)

// ChaseConfig contains all configuration for a chase world.
type ChaseConfig struct {
	Board      ChaseBoard       `yaml:"board"`
	Player     ChasePlayer      `yaml:"player"`
	Enemies    []ChaseEnemy     `yaml:"enemies"`
	Timing     ChaseTiming      `yaml:"timing"`
	Spawn      ChaseSpawn       `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ChaseBoard defines the playing field.
type ChaseBoard struct {
	Width       uint16 `yaml:"width"`
	Height      uint16 `yaml:"height"`
	RandomWalls uint16 `yaml:"random_walls"`
}

// ChasePlayer defines the player's starting parameters.
type ChasePlayer struct {
	Health uint8   `yaml:"health"`
	Speed  float64 `yaml:"speed"` // 0.0 - 1.0 cells per second
}

// ChaseEnemy defines one pursuer.
type ChaseEnemy struct {
	Speed float64 `yaml:"speed"`
}

// ChaseTiming defines the fixed tick.
type ChaseTiming struct {
	TickMillis int `yaml:"tick_millis"`
}

// ChaseSpawn bounds the reject/retry placement loop.
type ChaseSpawn struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// DifficultyConfig defines how presets scale a world at construction.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed factor at max difficulty
	HealthReduction int     `yaml:"health_reduction"` // Starting health removed at max difficulty
	ExtraWalls      int     `yaml:"extra_walls"`      // Random walls added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "keep the
// config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values a world cannot be built from.
func (c ChaseConfig) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 {
		return fmt.Errorf("%w: board %dx%d is smaller than 3x3", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Timing.TickMillis <= 0 {
		return fmt.Errorf("%w: tick_millis must be positive, got %d", ErrInvalidConfig, c.Timing.TickMillis)
	}
	if c.Player.Speed < 0 || c.Player.Speed > 1 {
		return fmt.Errorf("%w: player speed %.2f outside [0, 1]", ErrInvalidConfig, c.Player.Speed)
	}
	if c.Player.Health == 0 {
		return fmt.Errorf("%w: player health must be at least 1", ErrInvalidConfig)
	}
	for i, e := range c.Enemies {
		if e.Speed < 0 {
			return fmt.Errorf("%w: enemy %d has negative speed %.2f", ErrInvalidConfig, i, e.Speed)
		}
	}
	return nil
}
