package config

import (
	_ "embed"
)

//go:embed defaults/chase.yaml
var defaultChaseYAML []byte

// DefaultChaseConfig returns the hardcoded chase configuration. It mirrors
// defaults/chase.yaml and is used if the embedded file cannot be parsed.
func DefaultChaseConfig() ChaseConfig {
	return ChaseConfig{
		Board: ChaseBoard{
			Width:       60,
			Height:      20,
			RandomWalls: 12,
		},
		Player: ChasePlayer{
			Health: 10,
			Speed:  0.0,
		},
		Enemies: []ChaseEnemy{
			{Speed: 0.6},
			{Speed: 0.5},
			{Speed: 0.4},
		},
		Timing: ChaseTiming{
			TickMillis: 50,
		},
		Spawn: ChaseSpawn{
			MaxAttempts: 10000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				HealthReduction: 4,
				ExtraWalls:      20,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultChaseYAML
}
