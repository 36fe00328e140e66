package chase

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-chase/internal/config"
	"github.com/vovakirdan/tui-chase/internal/core"
)

// Builder collects construction parameters for a Game.
// The zero-config builder mirrors the classic board: 80x48, three enemies
// and a player at (1,1) facing east with ten health.
type Builder struct {
	width, height uint16
	randomWalls   uint16
	walls         []Wall
	enemies       []Enemy
	player        Player
	interval      time.Duration
	rng           RandomSource
	spawnAttempts int
	scenario      Scenario
}

// NewBuilder returns a builder with the default board.
func NewBuilder() *Builder {
	return &Builder{
		width:  80,
		height: 48,
		enemies: []Enemy{
			NewEnemy(0.6),
			NewEnemy(0.5),
			NewEnemy(0.4),
		},
		player: Player{
			position:  core.Pt(1.0, 1.0),
			direction: core.Pt(1.0, 0.0),
			health:    10,
		},
		interval:      50 * time.Millisecond,
		spawnAttempts: DefaultSpawnAttempts,
		scenario:      Scenario{ID: "custom", Title: "Custom"},
	}
}

// FromConfig returns a builder populated from a loaded configuration.
// Difficulty should already be applied to cfg.
func FromConfig(cfg config.ChaseConfig) *Builder {
	b := NewBuilder().
		Width(cfg.Board.Width).
		Height(cfg.Board.Height).
		RandomWalls(cfg.Board.RandomWalls).
		PlayerHealth(cfg.Player.Health).
		PlayerSpeed(cfg.Player.Speed).
		UpdateInterval(time.Duration(cfg.Timing.TickMillis) * time.Millisecond).
		SpawnAttempts(cfg.Spawn.MaxAttempts)

	enemies := make([]Enemy, len(cfg.Enemies))
	for i, e := range cfg.Enemies {
		enemies[i] = NewEnemy(e.Speed)
	}
	return b.Enemies(enemies...)
}

func (b *Builder) Width(w uint16) *Builder       { b.width = w; return b }
func (b *Builder) Height(h uint16) *Builder      { b.height = h; return b }
func (b *Builder) RandomWalls(n uint16) *Builder { b.randomWalls = n; return b }

// Walls adds fixed walls on top of the boundary and random ones.
func (b *Builder) Walls(walls ...Wall) *Builder {
	b.walls = append(b.walls, walls...)
	return b
}

// Enemies replaces the enemy list.
func (b *Builder) Enemies(enemies ...Enemy) *Builder {
	b.enemies = append([]Enemy(nil), enemies...)
	return b
}

func (b *Builder) PlayerHealth(h uint8) *Builder { b.player.health = h; return b }

// PlayerSpeed sets the starting speed, clamped to [0, 1].
func (b *Builder) PlayerSpeed(s float64) *Builder {
	b.player.speed = core.ClampF(s, MinSpeed, MaxSpeed)
	return b
}

func (b *Builder) PlayerPosition(x, y float64) *Builder {
	b.player.position = core.Pt(x, y)
	return b
}

// PlayerDirection sets the facing; it is normalized.
func (b *Builder) PlayerDirection(x, y float64) *Builder {
	b.player.direction = core.Normalize(core.Pt(x, y))
	return b
}

func (b *Builder) UpdateInterval(d time.Duration) *Builder { b.interval = d; return b }

// Rand injects the random source, mostly for deterministic tests.
func (b *Builder) Rand(rng RandomSource) *Builder { b.rng = rng; return b }

// Seed is shorthand for Rand with a seeded math/rand source.
func (b *Builder) Seed(seed int64) *Builder {
	return b.Rand(rand.New(rand.NewSource(seed)))
}

// SpawnAttempts caps random probing for the collectible. Values < 1 keep
// the default.
func (b *Builder) SpawnAttempts(n int) *Builder {
	if n > 0 {
		b.spawnAttempts = n
	}
	return b
}

func (b *Builder) Scenario(s Scenario) *Builder { b.scenario = s; return b }

// Build creates an uninitialized Game. Call Init before the first Step.
func (b *Builder) Build() *Game {
	rng := b.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	interval := b.interval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	g := &Game{
		scenario:       b.scenario,
		width:          b.width,
		height:         b.height,
		nRandomWalls:   b.randomWalls,
		walls:          append([]Wall(nil), b.walls...),
		enemies:        append([]Enemy(nil), b.enemies...),
		player:         b.player,
		updateInterval: interval,
		rng:            rng,
		spawnAttempts:  b.spawnAttempts,
	}
	g.hud.refresh(g)
	return g
}
