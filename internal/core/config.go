package core

import "time"

// RuntimeConfig is passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay, 0 = time based

	// TickInterval overrides the configured update interval when > 0.
	TickInterval time.Duration

	// ConfigPath is a custom YAML config file; empty uses the search path.
	ConfigPath string

	// Difficulty is a preset name: easy, normal, hard, fixed or empty.
	Difficulty string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState is returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Health   int  // Remaining player health
	GameOver bool // Whether the run has ended (game over or quit)
	Quit     bool // The run ended on an explicit quit command
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Err is set when the tick could not complete (a faulted world).
	Err error
}
