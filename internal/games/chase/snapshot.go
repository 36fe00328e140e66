package chase

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// ErrInvalidSave is returned when a snapshot parses but describes a world
// the game could not have produced.
var ErrInvalidSave = errors.New("invalid save")

// Snapshot is the persisted world. It carries every field a run needs to
// resume; the random source and the screen are rebuilt on load.
type Snapshot struct {
	Scenario       string               `json:"scenario" yaml:"scenario"`
	Width          uint16               `json:"width" yaml:"width"`
	Height         uint16               `json:"height" yaml:"height"`
	RandomWalls    uint16               `json:"random_walls" yaml:"random_walls"`
	Walls          []core.Point[uint16] `json:"walls" yaml:"walls"`
	Enemies        []EnemyState         `json:"enemies" yaml:"enemies"`
	Collectible    core.Point[uint16]   `json:"collectible" yaml:"collectible"`
	Player         PlayerState          `json:"player" yaml:"player"`
	UpdateInterval time.Duration        `json:"update_interval" yaml:"update_interval"`
	SpawnAttempts  int                  `json:"spawn_attempts" yaml:"spawn_attempts"`
	Status         Status               `json:"status" yaml:"status"`
	Paused         bool                 `json:"paused" yaml:"paused"`
	Tick           uint64               `json:"tick" yaml:"tick"`
}

// EnemyState is one persisted enemy.
type EnemyState struct {
	Position core.Point[float64] `json:"position" yaml:"position"`
	Speed    float64             `json:"speed" yaml:"speed"`
}

// PlayerState is the persisted player.
type PlayerState struct {
	Position  core.Point[float64] `json:"position" yaml:"position"`
	Direction core.Point[float64] `json:"direction" yaml:"direction"`
	Speed     float64             `json:"speed" yaml:"speed"`
	Health    uint8               `json:"health" yaml:"health"`
	Score     uint32              `json:"score" yaml:"score"`
}

// Snapshot returns the current world as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	walls := make([]core.Point[uint16], len(g.walls))
	for i, w := range g.walls {
		walls[i] = w.position
	}
	enemies := make([]EnemyState, len(g.enemies))
	for i, e := range g.enemies {
		enemies[i] = EnemyState{Position: e.position, Speed: e.speed}
	}

	return Snapshot{
		Scenario:    g.scenario.ID,
		Width:       g.width,
		Height:      g.height,
		RandomWalls: g.nRandomWalls,
		Walls:       walls,
		Enemies:     enemies,
		Collectible: g.collectible.position,
		Player: PlayerState{
			Position:  g.player.position,
			Direction: g.player.direction,
			Speed:     g.player.speed,
			Health:    g.player.health,
			Score:     g.player.score,
		},
		UpdateInterval: g.updateInterval,
		SpawnAttempts:  g.spawnAttempts,
		Status:         g.status,
		Paused:         g.paused,
		Tick:           g.tick,
	}
}

// Equal reports whether two snapshots describe the same world. Nil and
// empty collections compare equal.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Scenario == o.Scenario &&
		s.Width == o.Width &&
		s.Height == o.Height &&
		s.RandomWalls == o.RandomWalls &&
		slices.Equal(s.Walls, o.Walls) &&
		slices.Equal(s.Enemies, o.Enemies) &&
		s.Collectible == o.Collectible &&
		s.Player == o.Player &&
		s.UpdateInterval == o.UpdateInterval &&
		s.SpawnAttempts == o.SpawnAttempts &&
		s.Status == o.Status &&
		s.Paused == o.Paused &&
		s.Tick == o.Tick
}

// FromSnapshot rebuilds a world. A nil rng is replaced by a clock-seeded one.
func FromSnapshot(s Snapshot, rng RandomSource) (*Game, error) {
	if s.Width < 3 || s.Height < 3 {
		return nil, fmt.Errorf("snapshot %dx%d: %w", s.Width, s.Height, ErrBoardTooSmall)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sc, ok := LookupScenario(s.Scenario)
	if !ok {
		sc = Scenario{ID: s.Scenario, Title: s.Scenario}
	}

	g := &Game{
		scenario:       sc,
		width:          s.Width,
		height:         s.Height,
		nRandomWalls:   s.RandomWalls,
		walls:          make([]Wall, len(s.Walls)),
		enemies:        make([]Enemy, len(s.Enemies)),
		collectible:    Collectible{position: s.Collectible},
		updateInterval: s.UpdateInterval,
		rng:            rng,
		spawnAttempts:  s.SpawnAttempts,
		status:         s.Status,
		paused:         s.Paused,
		tick:           s.Tick,
		initialized:    true,
		player: Player{
			position:  s.Player.Position,
			direction: s.Player.Direction,
			speed:     s.Player.Speed,
			health:    s.Player.Health,
			score:     s.Player.Score,
		},
	}
	for i, p := range s.Walls {
		g.walls[i] = Wall{position: p}
	}
	for i, e := range s.Enemies {
		g.enemies[i] = Enemy{position: e.Position, speed: e.Speed}
	}
	if g.updateInterval <= 0 {
		g.updateInterval = 50 * time.Millisecond
	}
	if g.spawnAttempts <= 0 {
		g.spawnAttempts = DefaultSpawnAttempts
	}
	g.indexWalls()
	if err := g.validateLoaded(); err != nil {
		return nil, err
	}
	if l := core.Length(g.player.direction); l != 0 && math.Abs(l-1) > 1e-9 {
		g.player.direction = core.Normalize(g.player.direction)
	}
	g.hud.refresh(g)
	return g, nil
}

// validateLoaded rejects loaded state that breaks the placement and
// movement rules: everything on the board, the player off walls, speeds in
// range and the collectible on a free interior cell.
func (g *Game) validateLoaded() error {
	for _, w := range g.walls {
		if !g.inBoard(w.Cell()) {
			return fmt.Errorf("wall %v off the board: %w", w.position, ErrInvalidSave)
		}
	}

	p := g.player
	if !finite(p.position) || !finite(p.direction) {
		return fmt.Errorf("player %v heading %v: %w", p.position, p.direction, ErrInvalidSave)
	}
	if cell := p.Cell(); !g.inBoard(cell) || g.wallAt(cell) {
		return fmt.Errorf("player cell %v blocked or off the board: %w", cell, ErrInvalidSave)
	}
	if !(p.speed >= MinSpeed && p.speed <= MaxSpeed) {
		return fmt.Errorf("player speed %v: %w", p.speed, ErrInvalidSave)
	}

	for i, e := range g.enemies {
		if !finite(e.position) || !g.inBoard(e.Cell()) {
			return fmt.Errorf("enemy %d at %v off the board: %w", i, e.position, ErrInvalidSave)
		}
		if math.IsNaN(e.speed) || math.IsInf(e.speed, 0) || e.speed < 0 {
			return fmt.Errorf("enemy %d speed %v: %w", i, e.speed, ErrInvalidSave)
		}
	}

	c := g.collectible.position
	xr, yr := g.interior()
	if !xr.Contains(c.X) || !yr.Contains(c.Y) || g.wallAt(g.collectible.Cell()) {
		return fmt.Errorf("collectible %v blocked or outside the interior: %w", c, ErrInvalidSave)
	}
	return nil
}

func finite(p core.Point[float64]) bool {
	for _, v := range []float64{p.X, p.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
