package config

import "math"

// DifficultyManager scales construction-time world parameters by the
// difficulty level. Nothing is rescaled during a run: enemy speeds are
// fixed once the world is built.
type DifficultyManager struct {
	cfg   DifficultyConfig
	level float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		level: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the effective difficulty level (0.0 to 1.0), 0 when disabled.
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return d.level
}

// EnemySpeed returns a base enemy speed scaled by the level.
func (d *DifficultyManager) EnemySpeed(base float64) float64 {
	return base * (1.0 + d.Level()*d.cfg.Scaling.SpeedMultiplier)
}

// Health returns the starting health after the level's reduction, never below 1.
func (d *DifficultyManager) Health(base uint8) uint8 {
	reduction := int(math.Round(d.Level() * float64(d.cfg.Scaling.HealthReduction)))
	return uint8(max(1, int(base)-reduction))
}

// RandomWalls returns the interior wall count after the level's increase.
func (d *DifficultyManager) RandomWalls(base uint16) uint16 {
	extra := int(math.Round(d.Level() * float64(d.cfg.Scaling.ExtraWalls)))
	return uint16(min(math.MaxUint16, int(base)+max(0, extra)))
}

// Apply returns a copy of cfg with the difficulty scaling baked in.
// The returned config has difficulty disabled so applying twice is a no-op.
func (d *DifficultyManager) Apply(cfg ChaseConfig) ChaseConfig {
	out := cfg
	out.Enemies = make([]ChaseEnemy, len(cfg.Enemies))
	for i, e := range cfg.Enemies {
		out.Enemies[i] = ChaseEnemy{Speed: d.EnemySpeed(e.Speed)}
	}
	out.Player.Health = d.Health(cfg.Player.Health)
	out.Board.RandomWalls = d.RandomWalls(cfg.Board.RandomWalls)
	out.Difficulty.Enabled = false
	return out
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
