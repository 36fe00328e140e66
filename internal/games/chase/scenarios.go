package chase

import (
	"github.com/vovakirdan/tui-chase/internal/config"
	"github.com/vovakirdan/tui-chase/internal/core"
	"github.com/vovakirdan/tui-chase/internal/registry"
)

// Scenario is a named world preset layered over the loaded configuration.
type Scenario struct {
	ID          string
	Title       string
	Description string

	// Tune adjusts the configuration after difficulty scaling. Nil keeps it.
	Tune func(cfg *config.ChaseConfig)
}

// Config loads the configuration for a run of this scenario: file search,
// difficulty preset, scaling, scenario tuning and validation, in that order.
func (s Scenario) Config(rc core.RuntimeConfig) (config.ChaseConfig, error) {
	cfg, err := config.LoadChase(rc.ConfigPath)
	if err != nil {
		return config.ChaseConfig{}, err
	}
	preset, err := config.ParsePreset(rc.Difficulty)
	if err != nil {
		return config.ChaseConfig{}, err
	}
	config.ApplyChasePreset(&cfg, preset)
	cfg = config.NewDifficultyManager(cfg.Difficulty).Apply(cfg)

	if s.Tune != nil {
		s.Tune(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.ChaseConfig{}, err
	}
	return cfg, nil
}

// rampEnemies returns n enemies with speeds 0.05, 0.10, ... n*0.05.
func rampEnemies(n int) []config.ChaseEnemy {
	enemies := make([]config.ChaseEnemy, n)
	for i := range enemies {
		enemies[i] = config.ChaseEnemy{Speed: float64(i+1) * 0.05}
	}
	return enemies
}

var scenarios = []Scenario{
	{
		ID:          "classic",
		Title:       "Classic",
		Description: "The configured board as loaded",
	},
	{
		ID:          "swarm",
		Title:       "Swarm",
		Description: "Fourteen slow pursuers, the player already moving",
		Tune: func(cfg *config.ChaseConfig) {
			cfg.Enemies = rampEnemies(14)
			cfg.Player.Speed = 0.5
			cfg.Player.Health = 10
		},
	},
	{
		ID:          "maze",
		Title:       "Maze",
		Description: "Thirty random walls and nine pursuers",
		Tune: func(cfg *config.ChaseConfig) {
			cfg.Board.RandomWalls = 30
			cfg.Enemies = rampEnemies(9)
			cfg.Player.Speed = 0.5
		},
	},
}

// Scenarios returns the built-in scenarios in display order.
func Scenarios() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// LookupScenario finds a built-in scenario by ID.
func LookupScenario(id string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

func init() {
	for _, s := range scenarios {
		s := s
		registry.Register(s.ID, func() registry.Game {
			return New(s)
		})
	}
}
